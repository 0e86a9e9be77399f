package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/voyagen/m3ugroups/internal/config"
	"github.com/voyagen/m3ugroups/internal/service"
)

// Server holds dependencies for the HTTP API.
type Server struct {
	svc *service.Service
	cfg *config.Config
	log logrus.FieldLogger
	mux *http.ServeMux
}

// New creates a Server and registers routes.
func New(svc *service.Service, cfg *config.Config, log logrus.FieldLogger) *Server {
	srv := &Server{svc: svc, cfg: cfg, log: log, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	// Sessions
	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSummary)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/playlist", s.handleLoadPlaylist)

	// Groups and selection
	s.mux.HandleFunc("GET /api/sessions/{id}/groups", s.handleListGroups)
	s.mux.HandleFunc("POST /api/sessions/{id}/groups/{groupID}/toggle", s.handleToggleGroup)
	s.mux.HandleFunc("POST /api/sessions/{id}/selection/all", s.handleSelectAll)
	s.mux.HandleFunc("DELETE /api/sessions/{id}/selection", s.handleDeselectAll)

	// Channels
	s.mux.HandleFunc("GET /api/sessions/{id}/channels", s.handleListChannels)
	s.mux.HandleFunc("GET /api/sessions/{id}/export", s.handleExport)

	// Docs
	s.mux.HandleFunc("GET /api/docs", handleSwaggerUI)
	s.mux.HandleFunc("GET /api/docs/openapi.yaml", handleOpenAPISpec)

	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handler returns the server wrapped in its middleware chain.
func (s *Server) Handler() http.Handler {
	return withCORS(withLogging(s.log, s))
}

// ListenAndServe starts the HTTP server on the configured port.
// It blocks until the server is shut down or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := ":" + s.cfg.ServerPort
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.cfg.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Error("server shutdown")
		}
	}()

	s.log.WithField("addr", addr).Info("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	return nil
}
