// Package metrics exposes Prometheus collectors for graph, store,
// and render activity, plus hook implementations that feed them.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NodesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snarl_nodes_added_total",
		Help: "Total number of nodes added across all boards.",
	})

	NodesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snarl_nodes_removed_total",
		Help: "Total number of nodes removed across all boards.",
	})

	WiresDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snarl_wires_dropped_total",
		Help: "Total number of wires dropped by node removal cascades.",
	})

	WiresConnected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_wires_connected_total",
		Help: "Total number of wire connection attempts, labelled by outcome.",
	}, []string{"outcome"})

	WiresDisconnected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_wires_disconnected_total",
		Help: "Total number of wire disconnection attempts, labelled by outcome.",
	}, []string{"outcome"})

	BoardSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_board_saves_total",
		Help: "Total number of board writes, labelled by backend and status.",
	}, []string{"backend", "status"})

	BoardLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_board_loads_total",
		Help: "Total number of board reads, labelled by backend and status.",
	}, []string{"backend", "status"})

	BoardDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_board_deletes_total",
		Help: "Total number of board deletions, labelled by backend and status.",
	}, []string{"backend", "status"})

	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snarl_store_operation_duration_ms",
		Help:    "Board storage operation latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"backend", "operation"})

	Renders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_renders_total",
		Help: "Total number of render operations, labelled by format and status.",
	}, []string{"format", "status"})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snarl_render_duration_ms",
		Help:    "Render latency in milliseconds, labelled by format.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"format"})

	RenderCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_render_cache_total",
		Help: "Artifact cache lookups, labelled by format and result.",
	}, []string{"format", "result"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snarl_http_requests_total",
		Help: "Total number of HTTP requests, labelled by method and status class.",
	}, []string{"method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snarl_http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds, labelled by method.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"method"})
)

// ObserveHTTP records one served HTTP request.
func ObserveHTTP(method string, status int, ms float64) {
	HTTPRequests.WithLabelValues(method, fmt.Sprintf("%dxx", status/100)).Inc()
	HTTPDuration.WithLabelValues(method).Observe(ms)
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
