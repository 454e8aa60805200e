package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loan-applications-api/internal/adapter/http/middleware"
)

type LoanRouteRegistrar interface {
	RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler)
}

type AuthRouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type HealthRouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

func New(
	loanController LoanRouteRegistrar,
	authController AuthRouteRegistrar,
	healthController HealthRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
	opts Options,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))

	r.Handle("/metrics", promhttp.Handler())

	if healthController != nil {
		healthController.RegisterRoutes(r)
	}
	if authController != nil {
		authController.RegisterRoutes(r)
	}
	if loanController != nil {
		loanController.RegisterRoutes(r, authMiddleware)
	}

	return r
}
