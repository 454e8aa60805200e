package services

import (
	"context"
	"time"

	"loan-applications-api/internal/adapter/http/models"
	"loan-applications-api/internal/logger"
)

const statusUp = "UP"
const statusDown = "DOWN"

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	version string
	store   Pinger
}

func NewHealthService(version string, store Pinger) *HealthService {
	return &HealthService{version: version, store: store}
}

func (s *HealthService) Health() models.HealthResponse {
	return models.HealthResponse{
		Status:    statusUp,
		Version:   s.version,
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// Ready probes the application store; messageQueue and decisionEngine have no
// real backing dependency and always report UP.
func (s *HealthService) Ready(ctx context.Context) models.ReadinessResponse {
	database := statusUp
	if err := s.store.Ping(ctx); err != nil {
		logger.Error("health service store ping failed", err, nil)
		database = statusDown
	}

	overall := statusUp
	if database != statusUp {
		overall = statusDown
	}

	return models.ReadinessResponse{
		Status: overall,
		Checks: map[string]models.CheckStatus{
			"database":       {Status: database},
			"messageQueue":   {Status: statusUp},
			"decisionEngine": {Status: statusUp},
		},
	}
}
