// Package topo orders a cover-restricted dependency graph with Kahn's
// algorithm: repeatedly peel off nodes with no unresolved dependencies,
// so every node precedes its dependents in the result.
package topo

import (
	"sort"

	"github.com/matzehuels/depsolve/pkg/depgraph"
	depserrors "github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/graph"
)

// Sort runs Kahn's algorithm over order restricted to the nodes in cover,
// returning a dependency-first order: every node appears after everything
// it (transitively) depends on. It never mutates order; a local working
// copy is built instead.
//
// Returns a *depserrors.Error tagged CodeCycle if the restricted graph is
// not a DAG.
func Sort(order depgraph.OrderGraph, cover []string) ([]string, error) {
	inCover := make(map[string]bool, len(cover))
	for _, n := range cover {
		inCover[n] = true
	}

	g := graph.New()
	for _, n := range cover {
		_ = g.AddNode(n)
	}
	for _, n := range cover {
		for _, target := range order[n] {
			if inCover[target] {
				_ = g.AddEdge(n, target)
			}
		}
	}

	// remaining holds, for each node, the *dependencies* still unresolved
	// (edges n -> dep not yet emitted), mirroring kahn_sort's g[n]
	// shrinking as neighbors are consumed.
	remaining := make(map[string][]string, len(cover))
	for _, n := range cover {
		remaining[n] = append([]string{}, g.Outgoing(n)...)
	}

	var ready []string
	for _, n := range cover {
		if len(remaining[n]) == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	var order1 []string
	for len(ready) > 0 {
		n := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		order1 = append(order1, n)

		var newlyReady []string
		for _, candidate := range cover {
			if candidate == n {
				continue
			}
			deps := remaining[candidate]
			// Drop every edge to n: the same dependency may be listed
			// more than once (e.g. both required and weak).
			kept := deps[:0]
			for _, d := range deps {
				if d != n {
					kept = append(kept, d)
				}
			}
			if len(kept) == len(deps) {
				continue
			}
			remaining[candidate] = kept
			if len(kept) == 0 {
				newlyReady = append(newlyReady, candidate)
			}
		}
		sort.Strings(newlyReady)
		ready = append(ready, newlyReady...)
	}

	if len(order1) != len(cover) {
		return nil, depserrors.New(depserrors.CodeCycle, "dependency graph contains a cycle among %v", remainingWithDeps(remaining))
	}

	// order1 already emits each node once every dependency it has is
	// already emitted, so it is dependency-first as required.
	return order1, nil
}

func remainingWithDeps(remaining map[string][]string) []string {
	var stuck []string
	for n, deps := range remaining {
		if len(deps) > 0 {
			stuck = append(stuck, n)
		}
	}
	sort.Strings(stuck)
	return stuck
}
