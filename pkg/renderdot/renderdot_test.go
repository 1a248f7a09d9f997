package renderdot

import (
	"strings"
	"testing"

	"github.com/matzehuels/depsolve/pkg/depgraph"
)

func TestToDOTIncludesNodesAndEdges(t *testing.T) {
	g := depgraph.Graph{
		"app": {depgraph.RequiredAtom("lib"), depgraph.AltAtom("a", "b"), depgraph.WeakAtom("logconfig")},
		"lib": nil,
	}
	dot := ToDOT(g, Options{})

	for _, want := range []string{`"app"`, `"lib"`, `"a"`, `"b"`, `"logconfig"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing node %s:\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `"app" -> "lib";`) {
		t.Errorf("ToDOT() missing required edge:\n%s", dot)
	}
	if !strings.Contains(dot, `"app" -> "a" [style=dashed];`) {
		t.Errorf("ToDOT() missing alternation edge styling:\n%s", dot)
	}
	if !strings.Contains(dot, `"app" -> "logconfig" [style=dotted];`) {
		t.Errorf("ToDOT() missing weak edge styling:\n%s", dot)
	}
}

func TestToDOTMarksNonCoverNodesDashed(t *testing.T) {
	g := depgraph.Graph{
		"app": {depgraph.AltAtom("a", "b")},
	}
	dot := ToDOT(g, Options{Cover: map[string]bool{"app": true, "a": true}})

	if !strings.Contains(dot, `"b" [label="b", style="rounded,filled,dashed", fillcolor=lightgrey];`) {
		t.Errorf("ToDOT() expected b to be dashed as a non-cover node:\n%s", dot)
	}
	if strings.Contains(dot, `"a" [label="a", style="rounded,filled,dashed"`) {
		t.Errorf("ToDOT() should not dash a cover node:\n%s", dot)
	}
}
