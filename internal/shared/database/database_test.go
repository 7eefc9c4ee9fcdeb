package database

import (
	"context"
	"testing"

	"spreadedge/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_NothingEnabled(t *testing.T) {
	db := &DB{log: logger.Discard()}

	status := db.HealthCheck(context.Background())

	assert.Equal(t, map[string]string{"postgres": "disabled", "redis": "disabled"}, status)
	assert.True(t, Healthy(status))
}

func TestHealthy(t *testing.T) {
	assert.False(t, Healthy(map[string]string{"postgres": "healthy", "redis": "unhealthy"}))
	assert.True(t, Healthy(map[string]string{"postgres": "healthy", "redis": "disabled"}))
}

func TestClose_NothingOpen(t *testing.T) {
	db := &DB{log: logger.Discard()}
	assert.NoError(t, db.Close())
}
