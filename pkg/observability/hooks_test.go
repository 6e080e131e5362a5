package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Graph hooks
	g := NoopGraphHooks{}
	g.OnAddNode(ctx, "board-1")
	g.OnRemoveNode(ctx, "board-1", 3)
	g.OnConnect(ctx, "board-1", true)
	g.OnDisconnect(ctx, "board-1", false)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnSave(ctx, "file", 1024, time.Second, nil)
	s.OnLoad(ctx, "redis", time.Second, nil)
	s.OnDelete(ctx, "memory", nil)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg", 100)
	r.OnRenderComplete(ctx, "svg", time.Second, nil)
	r.OnCacheHit(ctx, "svg")
	r.OnCacheMiss(ctx, "png")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Graph().(NoopGraphHooks); !ok {
		t.Error("Graph() should return NoopGraphHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	// Set custom hooks
	customGraph := &testGraphHooks{}
	SetGraphHooks(customGraph)
	if Graph() != customGraph {
		t.Error("SetGraphHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Graph().(NoopGraphHooks); !ok {
		t.Error("Reset() should restore NoopGraphHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGraphHooks{}
	SetGraphHooks(custom)

	// Setting nil should be ignored
	SetGraphHooks(nil)

	if Graph() != custom {
		t.Error("SetGraphHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testGraphHooks struct{ NoopGraphHooks }
type testStoreHooks struct{ NoopStoreHooks }
type testRenderHooks struct{ NoopRenderHooks }
