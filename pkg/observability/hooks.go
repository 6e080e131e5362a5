// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph mutations, board storage, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGraphHooks(&myGraphHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Consumers call hooks to emit events:
//
//	observability.Graph().OnConnect(ctx, boardID, created)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from graph mutations.
type GraphHooks interface {
	// OnAddNode records a node insertion.
	OnAddNode(ctx context.Context, board string)

	// OnRemoveNode records a node removal and the number of wires
	// dropped by the cascade.
	OnRemoveNode(ctx context.Context, board string, wiresDropped int)

	// OnConnect records a wire connection attempt. created is false
	// when the wire already existed.
	OnConnect(ctx context.Context, board string, created bool)

	// OnDisconnect records a wire removal attempt. removed is false
	// when the wire did not exist.
	OnDisconnect(ctx context.Context, board string, removed bool)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from board storage operations.
type StoreHooks interface {
	// OnSave records a board write.
	OnSave(ctx context.Context, backend string, size int, duration time.Duration, err error)

	// OnLoad records a board read.
	OnLoad(ctx context.Context, backend string, duration time.Duration, err error)

	// OnDelete records a board deletion.
	OnDelete(ctx context.Context, backend string, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from render operations.
type RenderHooks interface {
	// OnRenderStart records the beginning of a render.
	OnRenderStart(ctx context.Context, format string, nodeCount int)

	// OnRenderComplete records a finished render.
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)

	// OnCacheHit records an artifact cache hit.
	OnCacheHit(ctx context.Context, format string)

	// OnCacheMiss records an artifact cache miss.
	OnCacheMiss(ctx context.Context, format string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnAddNode(context.Context, string)         {}
func (NoopGraphHooks) OnRemoveNode(context.Context, string, int) {}
func (NoopGraphHooks) OnConnect(context.Context, string, bool)   {}
func (NoopGraphHooks) OnDisconnect(context.Context, string, bool) {
}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnLoad(context.Context, string, time.Duration, error)      {}
func (NoopStoreHooks) OnDelete(context.Context, string, error)                   {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                    {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {
}
func (NoopRenderHooks) OnCacheHit(context.Context, string)  {}
func (NoopRenderHooks) OnCacheMiss(context.Context, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	graphHooks  GraphHooks  = NoopGraphHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any graph operations.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render operations.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = NoopGraphHooks{}
	storeHooks = NoopStoreHooks{}
	renderHooks = NoopRenderHooks{}
}
