package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/auth"
	"github.com/hongminglow/quantum-trade/internal/config"
	"github.com/hongminglow/quantum-trade/internal/http/handlers"
	"github.com/hongminglow/quantum-trade/internal/metrics"
	"github.com/hongminglow/quantum-trade/internal/middleware"
	"github.com/hongminglow/quantum-trade/internal/profile"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Profiles *profile.Registry
	Quotes   handlers.Quotes
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// NewHandler builds the router with middleware and routes.
func NewHandler(cfg config.Config, deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.ProfileTTL)

	r := chi.NewRouter()
	var rec middleware.StatusRecorder
	if deps.Metrics != nil {
		rec = deps.Metrics
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))

	handlers.NewHealthHandler(time.Now()).Register(r)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Profile(tokens, int(cfg.ProfileTTL.Seconds()), log))
		r.Use(middleware.Logging(log, rec))
		handlers.NewAuthHandler(deps.Profiles, cfg.HomePage, log).Register(r)
		handlers.NewSiteHandler(deps.Profiles, deps.Quotes, cfg.HomePage, cfg.LoginPage, log).Register(r)
	})

	return r
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
