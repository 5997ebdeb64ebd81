package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcuskbra/skeleton-challenge/internal/observability"
)

type RouterConfig struct {
	Handler       *Handler
	HealthHandler *observability.HealthHandler
	Metrics       *observability.Metrics
	Logger        *slog.Logger
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if cfg.Logger != nil {
		r.Use(observability.LoggingMiddleware(cfg.Logger))
	}

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/health", cfg.HealthHandler.Health)
	r.Get("/health/live", cfg.HealthHandler.Live)
	r.Get("/health/ready", cfg.HealthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/entities", func(r chi.Router) {
		r.Post("/", cfg.Handler.CreateEntity)
		r.Get("/", cfg.Handler.ListEntities)
		r.Get("/{id}", cfg.Handler.GetEntity)
		r.Patch("/{id}", cfg.Handler.UpdateEntity)
		r.Delete("/{id}", cfg.Handler.DeleteEntity)
	})

	return r
}
