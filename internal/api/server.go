// Package api serves the public HTTP surface next to the job workers: health,
// readiness, Prometheus metrics and the unauthenticated quick-estimate endpoint.
package api

import (
	"context"
	"net/http"
	"time"

	"creator-pricing-workers/internal/common/config"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/ratelimit"
	"creator-pricing-workers/internal/common/validation"
	qe "creator-pricing-workers/internal/workers/pricing/calculate-quick-estimate"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	QuickEstimatePath = "/api/v1/quick-estimate"

	maxBodyBytes = 64 << 10
	readyTimeout = 2 * time.Second
)

// Estimator is satisfied by the quick-estimate worker handler, so the endpoint
// and the job share one validation and calculation path.
type Estimator interface {
	Execute(ctx context.Context, input *qe.Input) (*qe.Output, error)
}

// Check is a named readiness probe, e.g. a Redis ping.
type Check func(ctx context.Context) error

type Dependencies struct {
	Estimator Estimator
	// Limiter may be nil, which disables rate limiting.
	Limiter   ratelimit.Limiter
	Validator *validation.Validator
	Checks    map[string]Check
	Logger    logger.Logger
}

type Server struct {
	cfg    config.HTTPConfig
	deps   Dependencies
	router chi.Router
	clock  func() time.Time
}

func NewServer(cfg config.HTTPConfig, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	s := &Server{cfg: cfg, deps: deps, clock: time.Now}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(s.rateLimit(QuickEstimatePath)).Post("/quick-estimate", s.handleQuickEstimate)
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer returns the listener configured from cfg.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.router,
		ReadTimeout:  config.GetDuration(s.cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(s.cfg.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}
}
