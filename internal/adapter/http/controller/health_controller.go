package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"loan-applications-api/internal/adapter/http/models"
)

type HealthService interface {
	Health() models.HealthResponse
	Ready(ctx context.Context) models.ReadinessResponse
}

type HealthController struct {
	service HealthService
}

func NewHealthController(service HealthService) *HealthController {
	return &HealthController{service: service}
}

func (c *HealthController) RegisterRoutes(r chi.Router) {
	r.Get("/health", c.health)
	r.Get("/health/ready", c.ready)
}

func (c *HealthController) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.service.Health())
}

func (c *HealthController) ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.service.Ready(r.Context()))
}
