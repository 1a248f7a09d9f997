package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "run-1", []string{"./components"})
	p.OnLoadComplete(ctx, "run-1", 10, time.Second, nil)
	p.OnCoverStart(ctx, "run-1", []string{"app"})
	p.OnCoverComplete(ctx, "run-1", 3, time.Second, nil)
	p.OnSortStart(ctx, "run-1", 3)
	p.OnSortComplete(ctx, "run-1", time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
