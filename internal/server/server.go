// Package server provides the HTTP server and routing for the risk engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/config"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/di"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/metrics"
	allocationhandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation/handlers"
	diversificationhandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/diversification/handlers"
	performancehandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance/handlers"
	rebalancinghandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/rebalancing/handlers"
	riskhandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/risk/handlers"
	universehandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/universe/handlers"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Config    *config.Config
	Container *di.Container // DI container with all engine components
	Version   string
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	container      *di.Container
	version        string
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		container: cfg.Container,
		version:   version,
	}
	s.systemHandlers = NewSystemHandlers(cfg.Log, cfg.Container, version)

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Prometheus request metrics
	s.router.Use(metrics.Middleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// Prometheus scrape endpoint
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler())

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
		})

		c := s.container

		// Instrument universe
		universehandlers.NewHandler(c.Universe, s.log).RegisterRoutes(r)

		// Risk profiling
		riskhandlers.NewHandler(c.Profiler, c.Classifier, c.Weights, s.log).RegisterRoutes(r)

		// Allocation construction
		allocationhandlers.NewHandler(c.Composer, c.Models, s.log).RegisterRoutes(r)

		// Diversification
		diversificationhandlers.NewHandler(c.Analyzer, s.log).RegisterRoutes(r)

		// Rebalancing
		rebalancinghandlers.NewHandler(c.Advisor, s.log).RegisterRoutes(r)

		// Performance metrics and comparison
		performancehandlers.NewHandler(c.Calculator, c.Comparator, s.log).RegisterRoutes(r)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Str("version", s.version).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
