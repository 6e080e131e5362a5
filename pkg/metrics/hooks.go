package metrics

import (
	"context"
	"time"

	"github.com/matzehuels/snarl/pkg/observability"
)

// GraphHooks feeds graph mutation events into Prometheus counters.
type GraphHooks struct{}

func (GraphHooks) OnAddNode(ctx context.Context, board string) {
	NodesAdded.Inc()
}

func (GraphHooks) OnRemoveNode(ctx context.Context, board string, wiresDropped int) {
	NodesRemoved.Inc()
	WiresDropped.Add(float64(wiresDropped))
}

func (GraphHooks) OnConnect(ctx context.Context, board string, created bool) {
	outcome := "duplicate"
	if created {
		outcome = "created"
	}
	WiresConnected.WithLabelValues(outcome).Inc()
}

func (GraphHooks) OnDisconnect(ctx context.Context, board string, removed bool) {
	outcome := "absent"
	if removed {
		outcome = "removed"
	}
	WiresDisconnected.WithLabelValues(outcome).Inc()
}

// StoreHooks feeds board storage events into Prometheus collectors.
type StoreHooks struct{}

func (StoreHooks) OnSave(ctx context.Context, backend string, size int, d time.Duration, err error) {
	BoardSaves.WithLabelValues(backend, statusLabel(err)).Inc()
	StoreLatency.WithLabelValues(backend, "save").Observe(float64(d.Milliseconds()))
}

func (StoreHooks) OnLoad(ctx context.Context, backend string, d time.Duration, err error) {
	BoardLoads.WithLabelValues(backend, statusLabel(err)).Inc()
	StoreLatency.WithLabelValues(backend, "load").Observe(float64(d.Milliseconds()))
}

func (StoreHooks) OnDelete(ctx context.Context, backend string, err error) {
	BoardDeletes.WithLabelValues(backend, statusLabel(err)).Inc()
}

// RenderHooks feeds render events into Prometheus collectors.
type RenderHooks struct{}

func (RenderHooks) OnRenderStart(ctx context.Context, format string, nodeCount int) {}

func (RenderHooks) OnRenderComplete(ctx context.Context, format string, d time.Duration, err error) {
	Renders.WithLabelValues(format, statusLabel(err)).Inc()
	RenderDuration.WithLabelValues(format).Observe(float64(d.Milliseconds()))
}

func (RenderHooks) OnCacheHit(ctx context.Context, format string) {
	RenderCache.WithLabelValues(format, "hit").Inc()
}

func (RenderHooks) OnCacheMiss(ctx context.Context, format string) {
	RenderCache.WithLabelValues(format, "miss").Inc()
}

// Register installs the Prometheus-backed hooks as the process-wide
// observability hooks.
func Register() {
	observability.SetGraphHooks(GraphHooks{})
	observability.SetStoreHooks(StoreHooks{})
	observability.SetRenderHooks(RenderHooks{})
}
