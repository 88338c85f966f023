package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"distribution-planner/internal/api/handlers"
	"distribution-planner/internal/platform/metrics"
	"distribution-planner/internal/ports"
	"distribution-planner/internal/services"
)

type Options struct {
	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit float64
	RateBurst int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, repo ports.SolutionRepository, opts Options) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	solHandler := &handlers.SolutionHandler{Planner: planner, Repo: repo}
	matrixHandler := &handlers.MatrixHandler{Planner: planner}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /solutions", solHandler.Create)
	mux.HandleFunc("GET /solutions", solHandler.List)
	mux.HandleFunc("GET /solutions/{id}", solHandler.Get)
	mux.HandleFunc("POST /matrix", matrixHandler.Matrix)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(rateLimitMiddleware(opts.RateLimit, opts.RateBurst, mux)))
}
