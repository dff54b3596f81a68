// Package server exposes the keyword library over HTTP so an external
// test-automation framework can drive it remotely. Each keyword maps to
// one JSON endpoint; asynchronous statements are tracked by id between
// the start and resolve calls.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/robotcql/robotcql/internal/cassandra"
	"github.com/robotcql/robotcql/internal/config"
	"github.com/robotcql/robotcql/internal/keywords"
	"github.com/robotcql/robotcql/internal/logger"
)

// Server hosts one keyword library instance. The library itself is
// single-threaded, so every keyword call holds mu for its duration.
type Server struct {
	cfg *config.Config
	lib *keywords.Library
	log *logger.Logger

	mu sync.Mutex // serializes keyword access

	pmu     sync.Mutex
	pending map[string]*cassandra.Pending
}

// New builds a Server dialing real clusters.
func New(cfg *config.Config, log *logger.Logger) *Server {
	return NewWithLibrary(cfg, log, keywords.New(log))
}

// NewWithLibrary builds a Server around an existing library instance.
func NewWithLibrary(cfg *config.Config, log *logger.Logger, lib *keywords.Library) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.New(nil)
	}
	return &Server{
		cfg:     cfg,
		lib:     lib,
		log:     log,
		pending: make(map[string]*cassandra.Pending),
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/connections", s.handleConnect)
		r.Delete("/connections/current", s.handleDisconnect)
		r.Delete("/connections", s.handleCloseAll)
		r.Post("/connections/switch", s.handleSwitch)

		r.Post("/execute", s.handleExecute)
		r.Post("/execute/async", s.handleExecuteAsync)
		r.Get("/pending/{id}", s.handleResolve)

		r.Post("/column", s.handleGetColumn)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully and closes all open connections.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	s.mu.Lock()
	closeErr := s.lib.CloseAll()
	s.mu.Unlock()
	if err == nil {
		err = closeErr
	}
	return err
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("duration", time.Since(start).String()).
			Logger().
			Info("request")
	})
}
