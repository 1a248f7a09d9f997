package resolve

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/matzehuels/depsolve/pkg/depgraph"
)

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

func contains(ss []string, s string) bool {
	return indexOf(ss, s) >= 0
}

func sortedCopy(ss []string) []string {
	out := append([]string{}, ss...)
	sort.Strings(out)
	return out
}

func equalSets(got, want []string) bool {
	g, w := sortedCopy(got), sortedCopy(want)
	if len(g) != len(w) {
		return false
	}
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}

func TestResolveLinearChain(t *testing.T) {
	graph := depgraph.Graph{
		"app":  {depgraph.RequiredAtom("lib")},
		"lib":  {depgraph.RequiredAtom("base")},
		"base": nil,
	}
	res, err := Resolve(context.Background(), graph, []string{"app"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if !equalSets(res.Cover, []string{"app", "lib", "base"}) {
		t.Errorf("Cover = %v, want {app, lib, base}", res.Cover)
	}
	if indexOf(res.Order, "base") > indexOf(res.Order, "lib") ||
		indexOf(res.Order, "lib") > indexOf(res.Order, "app") {
		t.Errorf("Order = %v, want base before lib before app", res.Order)
	}
}

func TestResolveAlternationPrefersFirstListed(t *testing.T) {
	graph := depgraph.Graph{
		"accel": {depgraph.RequiredAtom("base"), depgraph.AltAtom("mach3", "ab")},
		"mach3": {depgraph.RequiredAtom("base")},
		"ab":    {depgraph.RequiredAtom("base")},
		"base":  nil,
	}
	res, err := Resolve(context.Background(), graph, []string{"accel"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if !contains(res.Cover, "mach3") || contains(res.Cover, "ab") {
		t.Errorf("Cover = %v, want mach3 chosen over ab (first-listed, equal size)", res.Cover)
	}
}

func TestResolveMultipleRequiredRootsBothForced(t *testing.T) {
	graph := depgraph.Graph{
		"accel": {depgraph.RequiredAtom("base"), depgraph.AltAtom("mach3", "ab")},
		"mach3": {depgraph.RequiredAtom("base")},
		"ab":    {depgraph.RequiredAtom("base")},
		"base":  nil,
	}
	res, err := Resolve(context.Background(), graph, []string{"accel", "ab"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if !equalSets(res.Cover, []string{"accel", "ab", "base"}) {
		t.Errorf("Cover = %v, want {accel, ab, base} (mach3 unneeded once ab is hard-required)", res.Cover)
	}
}

func TestResolveWeakDepOrdersWithoutForcingCover(t *testing.T) {
	graph := depgraph.Graph{
		"app": {depgraph.RequiredAtom("lib"), depgraph.WeakAtom("logconfig")},
		"lib": nil,
	}
	res, err := Resolve(context.Background(), graph, []string{"app"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if contains(res.Cover, "logconfig") {
		t.Errorf("Cover = %v, a weak dep must never force cover membership", res.Cover)
	}
}

func TestResolveWeakDepOrdersWhenBothInCover(t *testing.T) {
	graph := depgraph.Graph{
		"app":       {depgraph.RequiredAtom("lib"), depgraph.WeakAtom("logconfig")},
		"lib":       {depgraph.RequiredAtom("logconfig")},
		"logconfig": nil,
	}
	res, err := Resolve(context.Background(), graph, []string{"app"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if !contains(res.Cover, "logconfig") {
		t.Fatalf("Cover = %v, expected logconfig via lib's hard dep", res.Cover)
	}
	if indexOf(res.Order, "logconfig") > indexOf(res.Order, "app") {
		t.Errorf("Order = %v, want logconfig before app", res.Order)
	}
}

func TestResolveCycleIsReported(t *testing.T) {
	graph := depgraph.Graph{
		"X": {depgraph.RequiredAtom("Y")},
		"Y": {depgraph.RequiredAtom("X")},
	}
	_, err := Resolve(context.Background(), graph, []string{"X"})
	if err == nil {
		t.Fatal("Resolve() expected a cycle error")
	}
	if !Is(err, CodeCycle) {
		t.Errorf("Resolve() error code = %v, want CodeCycle", GetCode(err))
	}
}

func TestResolveReferencedButUndefinedNode(t *testing.T) {
	// "extra" is never given its own entry in the graph.
	graph := depgraph.Graph{
		"app": {depgraph.RequiredAtom("extra")},
	}
	res, err := Resolve(context.Background(), graph, []string{"app"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if !contains(res.Cover, "extra") {
		t.Errorf("Cover = %v, want extra included despite having no atoms of its own", res.Cover)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	graph := depgraph.Graph{
		"app": {depgraph.RequiredAtom("lib"), depgraph.AltAtom("a", "b")},
		"lib": nil,
		"a":   nil,
		"b":   nil,
	}
	first, err := Resolve(context.Background(), graph, []string{"app"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	second, err := Resolve(context.Background(), graph, []string{"app"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if !equalSets(first.Cover, second.Cover) || !sliceEqual(first.Order, second.Order) {
		t.Errorf("Resolve() not idempotent: first=%+v second=%+v", first, second)
	}
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadAndResolveFromDirectory(t *testing.T) {
	root := t.TempDir()
	mustMkdirAll(t, filepath.Join(root, "app"))
	mustWriteFile(t, filepath.Join(root, "app", "deps"), "lib")
	mustMkdirAll(t, filepath.Join(root, "lib"))

	res, err := LoadAndResolve(context.Background(), root, "", []string{"app"})
	if err != nil {
		t.Fatalf("LoadAndResolve() unexpected error: %v", err)
	}
	if !equalSets(res.Cover, []string{"app", "lib"}) {
		t.Errorf("Cover = %v, want {app, lib}", res.Cover)
	}
	if res.Meta["app"].Path != filepath.Join(root, "app") {
		t.Errorf("Meta[app].Path = %q, want %q", res.Meta["app"].Path, filepath.Join(root, "app"))
	}
	if len(res.Meta["app"].Deps) != 1 || res.Meta["app"].Deps[0] != "lib" {
		t.Errorf("Meta[app].Deps = %v, want [lib]", res.Meta["app"].Deps)
	}
}

func TestResolveSyntheticMetaOmitsUndefinedNodes(t *testing.T) {
	graph := depgraph.Graph{
		"app": {depgraph.RequiredAtom("extra")},
	}
	res, err := Resolve(context.Background(), graph, []string{"app"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if _, ok := res.Meta["extra"]; ok {
		t.Errorf("Meta[extra] should be absent for a node never given its own entry")
	}
	if len(res.Meta["app"].Deps) != 1 || res.Meta["app"].Deps[0] != "extra" {
		t.Errorf("Meta[app].Deps = %v, want [extra]", res.Meta["app"].Deps)
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
