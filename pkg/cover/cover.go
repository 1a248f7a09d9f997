// Package cover searches the strong graph (Required and Alternation atoms
// only) for a minimum-cardinality set of nodes that satisfies every
// alternation along the way: a "cover."
//
// The search is an explicit worklist/visited-set walk: each pending
// search branch is a frame pushed onto an explicit stack rather than a
// call-stack frame, so the search depth is bounded by heap, not by the
// Go runtime's goroutine stack.
package cover

import (
	"github.com/matzehuels/depsolve/pkg/depgraph"
	depserrors "github.com/matzehuels/depsolve/pkg/errors"
)

// state is one pending search branch: the cover assembled so far, the set
// of nodes already decided (added to the cover or ruled on), and the
// worklist of atoms still to resolve.
type state struct {
	result  []string
	visited map[string]bool
	pending []depgraph.Atom
}

func cloneVisited(v map[string]bool) map[string]bool {
	out := make(map[string]bool, len(v))
	for k, ok := range v {
		out[k] = ok
	}
	return out
}

// Find searches strong, starting from the single node start, for a
// minimum-cardinality cover. Among covers of equal minimum size, the one
// whose search branch completes first (matching the branch order in which
// alternation alternatives are listed) is returned, so the result is
// deterministic for a given graph and atom ordering.
//
// start is typically depgraph.SentinelStart, already present in strong
// with one Required atom per caller-supplied required node name. The
// returned cover never includes depgraph.SentinelStart or
// depgraph.SentinelBegin, the synthetic nodes used to anchor the search.
func Find(strong depgraph.StrongGraph, start string) ([]string, error) {
	augmented := make(depgraph.StrongGraph, len(strong)+1)
	for k, v := range strong {
		augmented[k] = v
	}
	augmented[depgraph.SentinelBegin] = []depgraph.Atom{depgraph.RequiredAtom(start)}

	stack := []state{{
		visited: map[string]bool{},
		pending: []depgraph.Atom{depgraph.RequiredAtom(depgraph.SentinelBegin)},
	}}

	var best []string
	found := false

	for len(stack) > 0 {
		top := len(stack) - 1
		cur := stack[top]
		stack = stack[:top]

		if len(cur.pending) == 0 {
			if !found || len(cur.result) < len(best) {
				best = cur.result
				found = true
			}
			continue
		}

		atom := cur.pending[0]
		rest := cur.pending[1:]

		if atom.Kind == depgraph.Alternation {
			branches := make([]state, 0, len(atom.Nodes))
			for _, alt := range atom.Nodes {
				visited := cloneVisited(cur.visited)
				result := cur.result
				if !visited[alt] {
					result = append(append([]string{}, cur.result...), alt)
					visited[alt] = true
				}
				pending := append([]depgraph.Atom{depgraph.RequiredAtom(alt)}, rest...)
				branches = append(branches, state{result: result, visited: visited, pending: pending})
			}
			// Push in reverse so the first-listed alternative is explored
			// (and, on ties, emitted) first.
			for i := len(branches) - 1; i >= 0; i-- {
				stack = append(stack, branches[i])
			}
			continue
		}

		node := atom.Nodes[0]
		visited := cloneVisited(cur.visited)
		result := cur.result
		if !visited[node] {
			result = append(append([]string{}, cur.result...), node)
			visited[node] = true
		}

		var children []depgraph.Atom
		for _, childAtom := range augmented[node] {
			if childAtom.Kind == depgraph.Alternation {
				children = append(children, childAtom)
				continue
			}
			if !visited[childAtom.Nodes[0]] {
				children = append(children, childAtom)
			}
		}
		pending := append(append([]depgraph.Atom{}, rest...), children...)
		stack = append(stack, state{result: result, visited: visited, pending: pending})
	}

	if !found {
		return nil, depserrors.New(depserrors.CodeUnsatisfiable, "no cover satisfies %q", start)
	}

	out := make([]string, 0, len(best))
	for _, n := range best {
		if n == depgraph.SentinelBegin || n == depgraph.SentinelStart {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
