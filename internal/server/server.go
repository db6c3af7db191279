package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"wayfarer/internal/config"
	"wayfarer/internal/graph"
	"wayfarer/internal/handler"
)

// Server is the HTTP server exposing the routing API.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	http   *http.Server
}

// New creates a Server with all routes registered against g.
func New(cfg *config.Config, g *graph.Graph, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	h := handler.New(g, cfg, logger)

	mux.HandleFunc("POST /sights", h.Sights)
	mux.HandleFunc("POST /route", h.Route)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf("%s:%d", cfg.IP, cfg.Port)
	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:    addr,
			Handler: withMiddleware(mux, logger),
		},
	}
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errc
	}
}
