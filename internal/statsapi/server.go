// Package statsapi serves the player statistics and hand history API
// over HTTP. Read-only: all writes happen through the collector.
package statsapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/lox/pokerhub/internal/hand"
	"github.com/lox/pokerhub/internal/storage"
)

// Store is the subset of storage the API reads from.
type Store interface {
	Players(ctx context.Context) ([]storage.PlayerSummary, error)
	PlayerStats(ctx context.Context, name string) (*storage.PlayerReport, error)
	PlayerRecentHands(ctx context.Context, name string, limit int) ([]storage.PlayerHandRow, error)
	RecentHands(ctx context.Context, limit int) ([]storage.HandSummary, error)
	GetHand(ctx context.Context, handID string) (*hand.Record, error)
	Files(ctx context.Context) ([]storage.FileRecord, error)
	HealthCheck(ctx context.Context) error
}

// Server is the HTTP stats server.
type Server struct {
	router *chi.Mux
	server *http.Server
	store  Store
	log    zerolog.Logger
}

// New creates the server listening on the given port.
func New(store Store, port int, logger zerolog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		log:    logger.With().Str("component", "statsapi").Logger(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/players", s.handlePlayers)
		r.Get("/players/{name}/stats", s.handlePlayerStats)
		r.Get("/players/{name}/hands", s.handlePlayerHands)
		r.Get("/hands/recent", s.handleRecentHands)
		r.Get("/hands/{id}", s.handleGetHand)
		r.Get("/files", s.handleFiles)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("stats api listening")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down stats api")
	return s.server.Shutdown(ctx)
}
