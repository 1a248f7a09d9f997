// Package observability provides hooks for instrumenting the resolution
// pipeline without coupling the core packages to a logging framework.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for the pipeline's event categories
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by the CLI, not by pkg/*)
//   - Keeps pkg/resolve and its collaborators dependency-free from logging
//   - Allows different backends to be plugged in without touching pkg/*
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&cliHooks{logger: log})
//	    // ... run application
//	}
//
// Library code calls hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, runID, paths)
//	// ... load graph ...
//	observability.Pipeline().OnLoadComplete(ctx, runID, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the resolution pipeline: graph loading,
// alternation cover search, and topological ordering. Each stage fires a
// Start/Complete pair; Complete always carries the error, if any, so hooks
// can distinguish a stage that failed from one that never ran.
type PipelineHooks interface {
	// OnLoadStart fires before the graph loader reads any source path.
	OnLoadStart(ctx context.Context, runID string, paths []string)
	// OnLoadComplete fires after all sources have been merged into one graph.
	OnLoadComplete(ctx context.Context, runID string, nodeCount int, duration time.Duration, err error)

	// OnCoverStart fires before the alternation cover search begins.
	OnCoverStart(ctx context.Context, runID string, required []string)
	// OnCoverComplete fires once a minimum-cardinality cover has been chosen
	// (or the search has determined none exists).
	OnCoverComplete(ctx context.Context, runID string, coverSize int, duration time.Duration, err error)

	// OnSortStart fires before Kahn's algorithm runs over the cover-restricted
	// order graph.
	OnSortStart(ctx context.Context, runID string, nodeCount int)
	// OnSortComplete fires after the topological order has been produced, or
	// a cycle has been detected.
	OnSortComplete(ctx context.Context, runID string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string, []string)                   {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnCoverStart(context.Context, string, []string)                  {}
func (NoopPipelineHooks) OnCoverComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnSortStart(context.Context, string, int)             {}
func (NoopPipelineHooks) OnSortComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the hooks to their no-op default.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
