// Package server exposes the task API over HTTP: submit a report request,
// poll its status, and a liveness probe.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/joseph-ayodele/news-alert/internal/async"
	"github.com/joseph-ayodele/news-alert/internal/task"
)

// Server holds the HTTP surface and its collaborators.
type Server struct {
	store  *task.Store
	queue  *async.TaskQueue
	logger *slog.Logger
	mux    *http.ServeMux
}

func New(store *task.Store, queue *async.TaskQueue, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:  store,
		queue:  queue,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/tasks/news-report", s.handleCreateTask)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the routed handler, for serving and for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http.serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("http.shutdown_error", "error", err)
		return err
	}
	s.logger.Info("http.stopped")
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("http.encode_error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}
