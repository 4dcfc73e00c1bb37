package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/catalog-crawler/internal/delivery/http/handler"
	"github.com/user/catalog-crawler/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)

	r.Get("/healthz", h.HandleHealthCheck)
	r.Get("/api/progress", h.HandleProgress)
	r.Get("/api/items", h.HandleRecentItems)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
