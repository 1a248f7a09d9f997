package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depsolve/pkg/resolve"
)

// cliHooks adapts the resolution pipeline's observability events onto the
// request-scoped logger, keeping pkg/* free of a logging dependency while
// still producing structured progress output.
type cliHooks struct {
	logger *log.Logger
}

func (h *cliHooks) OnLoadStart(_ context.Context, runID string, paths []string) {
	h.logger.Debugf("[%s] loading graph from %v", runID, paths)
}

func (h *cliHooks) OnLoadComplete(_ context.Context, runID string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("[%s] load failed: %v", runID, resolve.UserMessage(err))
		return
	}
	h.logger.Debugf("[%s] loaded %d nodes in %s", runID, nodeCount, d.Round(time.Millisecond))
}

func (h *cliHooks) OnCoverStart(_ context.Context, runID string, required []string) {
	h.logger.Debugf("[%s] searching for a cover of %v", runID, required)
}

func (h *cliHooks) OnCoverComplete(_ context.Context, runID string, coverSize int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("[%s] cover search failed: %v", runID, resolve.UserMessage(err))
		return
	}
	h.logger.Debugf("[%s] found a %d-node cover in %s", runID, coverSize, d.Round(time.Millisecond))
}

func (h *cliHooks) OnSortStart(_ context.Context, runID string, nodeCount int) {
	h.logger.Debugf("[%s] topologically sorting %d nodes", runID, nodeCount)
}

func (h *cliHooks) OnSortComplete(_ context.Context, runID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("[%s] sort failed: %v", runID, resolve.UserMessage(err))
		return
	}
	h.logger.Debugf("[%s] sorted in %s", runID, d.Round(time.Millisecond))
}
