package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-applications-api/internal/adapter/repository/memory"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealth(t *testing.T) {
	svc := NewHealthService("1.0.0", memory.NewApplicationRepository())

	resp := svc.Health()
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, resp.Timestamp)
}

func TestReady(t *testing.T) {
	svc := NewHealthService("1.0.0", memory.NewApplicationRepository())

	resp := svc.Ready(context.Background())
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, "UP", resp.Checks["database"].Status)
	assert.Equal(t, "UP", resp.Checks["messageQueue"].Status)
	assert.Equal(t, "UP", resp.Checks["decisionEngine"].Status)
}

func TestReadyStoreDown(t *testing.T) {
	svc := NewHealthService("1.0.0", failingPinger{})

	resp := svc.Ready(context.Background())
	assert.Equal(t, "DOWN", resp.Status)
	assert.Equal(t, "DOWN", resp.Checks["database"].Status)
	assert.Equal(t, "UP", resp.Checks["messageQueue"].Status)
}
