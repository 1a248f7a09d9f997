// Package resolve orchestrates the full pipeline: load a dependency graph,
// normalize it into its strong and order graphs, search for a minimum
// cover of the caller's required nodes, and topologically sort the cover
// into a dependency-first build order.
package resolve

import (
	"context"
	"time"

	"github.com/matzehuels/depsolve/pkg/cover"
	"github.com/matzehuels/depsolve/pkg/depgraph"
	"github.com/matzehuels/depsolve/pkg/depstring"
	depserrors "github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/observability"
	"github.com/matzehuels/depsolve/pkg/source"
	"github.com/matzehuels/depsolve/pkg/topo"
)

// Re-exported so callers only need to import this package for the common
// error-handling path.
const (
	CodeParse         = depserrors.CodeParse
	CodeLoad          = depserrors.CodeLoad
	CodeCycle         = depserrors.CodeCycle
	CodeUnsatisfiable = depserrors.CodeUnsatisfiable
	CodeInternal      = depserrors.CodeInternal
)

// Is and UserMessage mirror pkg/errors so callers that only ever touch
// resolve.Error values don't need a second import.
var (
	Is          = depserrors.Is
	UserMessage = depserrors.UserMessage
	GetCode     = depserrors.GetCode
)

// Error is the structured error type every resolution failure is reported
// as.
type Error = depserrors.Error

// Result is the outcome of a single Resolve call.
type Result struct {
	// Cover is the minimum-cardinality set of nodes, excluding the
	// synthetic :START root, that satisfies every required node and every
	// alternation reachable from it.
	Cover []string
	// Order lists Cover in dependency-first order: every node appears
	// after everything it (transitively) depends on.
	Order []string
	// Meta carries each loaded node's source path and raw dep tokens, for
	// pkg/project's paths/json projections. A name in Order absent from
	// Meta was referenced but never given its own entry in any source.
	Meta depgraph.MetaGraph
}

// Resolve runs the full pipeline over graph for the given required node
// names. ctx is only used to carry a run ID for observability hooks; the
// pipeline itself never blocks or does I/O.
//
// graph carries no loader metadata (no source path per node), so the
// returned Result's Meta is synthesized from graph's atoms alone, with
// an empty Path for every node. Callers that need real source paths
// should go through LoadAndResolve instead.
func Resolve(ctx context.Context, graph depgraph.Graph, required []string) (*Result, error) {
	return resolveWithMeta(ctx, graph, syntheticMeta(graph), required)
}

func syntheticMeta(graph depgraph.Graph) depgraph.MetaGraph {
	meta := make(depgraph.MetaGraph, len(graph))
	for name, atoms := range graph {
		meta[name] = depgraph.Meta{Deps: depstring.Tokens(atoms)}
	}
	return meta
}

func resolveWithMeta(ctx context.Context, graph depgraph.Graph, meta depgraph.MetaGraph, required []string) (*Result, error) {
	runID := runIDFromContext(ctx)

	augmented := graph.WithRequired(required)
	strong, order := depgraph.Normalize(augmented)

	observability.Pipeline().OnCoverStart(ctx, runID, required)
	start := time.Now()
	coverSet, err := cover.Find(strong, depgraph.SentinelStart)
	observability.Pipeline().OnCoverComplete(ctx, runID, len(coverSet), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnSortStart(ctx, runID, len(coverSet))
	start = time.Now()
	sorted, err := topo.Sort(order, coverSet)
	observability.Pipeline().OnSortComplete(ctx, runID, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return &Result{Cover: coverSet, Order: sorted, Meta: meta}, nil
}

// LoadAndResolve loads the dependency graph named by pathSpec (a
// colon-separated list of source paths) and then runs the same pipeline as
// Resolve over it, keeping the loader's per-node metadata in Result.Meta.
// depFile overrides the directory source's per-node filename; pass ""
// for the default.
func LoadAndResolve(ctx context.Context, pathSpec, depFile string, required []string) (*Result, error) {
	runID := runIDFromContext(ctx)
	paths := splitPathSpec(pathSpec)

	observability.Pipeline().OnLoadStart(ctx, runID, paths)
	start := time.Now()
	graph, meta, err := source.LoadAll(pathSpec, depFile)
	observability.Pipeline().OnLoadComplete(ctx, runID, len(graph), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return resolveWithMeta(ctx, graph, meta, required)
}

func splitPathSpec(pathSpec string) []string {
	var out []string
	start := 0
	for i := 0; i < len(pathSpec); i++ {
		if pathSpec[i] == ':' {
			if i > start {
				out = append(out, pathSpec[start:i])
			}
			start = i + 1
		}
	}
	if start < len(pathSpec) {
		out = append(out, pathSpec[start:])
	}
	return out
}

type runIDKey struct{}

// WithRunID attaches a correlation ID to ctx for observability hooks to
// read back.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

func runIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey{}).(string); ok {
		return v
	}
	return ""
}
