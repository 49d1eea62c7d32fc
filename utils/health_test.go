package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealth_ReportsEachDependency(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	now := time.Now()
	status := checkHealth(context.Background(), healthProbes{
		Mongo:     ok,
		AuthCache: ok,
		OTPCache:  down,
		Queue:     ok,
	}, now)

	assert.True(t, status.Mongo)
	assert.True(t, status.AuthCache)
	assert.False(t, status.OTPCache)
	assert.True(t, status.Queue)
	assert.Equal(t, now, status.CheckedAt)
}

func TestCheckHealth_NilProbeIsUnhealthy(t *testing.T) {
	status := checkHealth(context.Background(), healthProbes{}, time.Now())

	assert.False(t, status.Mongo)
	assert.False(t, status.AuthCache)
	assert.False(t, status.OTPCache)
	assert.False(t, status.Queue)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestGetHealthStatus_ReturnsStoredSnapshot(t *testing.T) {
	snapshot := HealthStatus{Mongo: true, Queue: true, CheckedAt: time.Now()}
	storeHealth(snapshot)

	assert.Equal(t, snapshot, GetHealthStatus())
}
