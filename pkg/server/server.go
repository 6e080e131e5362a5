// Package server exposes boards over an HTTP API.
//
// The API is JSON-first: boards are created, mutated, and fetched as
// JSON documents, and a render endpoint returns SVG for embedding.
// Errors are returned as {"error": {"code", "message"}} objects using
// the codes from pkg/errors.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	snarlerrors "github.com/matzehuels/snarl/pkg/errors"
	"github.com/matzehuels/snarl/pkg/metrics"
	"github.com/matzehuels/snarl/pkg/store"
)

// Server serves the board API.
type Server struct {
	store  store.Store
	logger *log.Logger
}

// New creates a server backed by the given board store.
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: st, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/boards", func(r chi.Router) {
		r.Post("/", s.handleCreateBoard)
		r.Get("/", s.handleListBoards)

		r.Route("/{board}", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)
			r.Put("/", s.handleUpdateBoard)
			r.Delete("/", s.handleDeleteBoard)
			r.Get("/render.svg", s.handleRenderSVG)

			r.Post("/nodes", s.handleAddNode)
			r.Patch("/nodes/{node}", s.handleUpdateNode)
			r.Delete("/nodes/{node}", s.handleRemoveNode)

			r.Get("/wires", s.handleListWires)
			r.Post("/wires", s.handleConnect)
			r.Delete("/wires", s.handleDisconnect)
		})
	})

	return r
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)
		metrics.ObserveHTTP(r.Method, ww.Status(), float64(elapsed.Milliseconds()))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps an error to an HTTP status and a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	code := snarlerrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case snarlerrors.ErrCodeNotFound, snarlerrors.ErrCodeBoardNotFound,
		snarlerrors.ErrCodeNodeNotFound, snarlerrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case snarlerrors.ErrCodeInvalidInput, snarlerrors.ErrCodeInvalidBoard,
		snarlerrors.ErrCodeInvalidFormat, snarlerrors.ErrCodeInvalidPin:
		status = http.StatusBadRequest
	case snarlerrors.ErrCodeMalformedGraph:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]errorBody{"error": {
		Code:    string(code),
		Message: snarlerrors.UserMessage(err),
	}})
}
