package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus reports reachability of every external dependency the service
// needs: the document store, both caches and the delivery queue's Redis DB.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	AuthCache bool      `json:"authCache"`
	OTPCache  bool      `json:"otpCache"`
	Queue     bool      `json:"queue"`
	CheckedAt time.Time `json:"checkedAt"`
}

// healthProbes holds one ping per dependency. A nil probe reports unhealthy.
type healthProbes struct {
	Mongo     func(context.Context) error
	AuthCache func(context.Context) error
	OTPCache  func(context.Context) error
	Queue     func(context.Context) error
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func storeHealth(h HealthStatus) {
	healthMu.Lock()
	currentHealth = h
	healthMu.Unlock()
}

func probeOK(ctx context.Context, probe func(context.Context) error) bool {
	return probe != nil && probe(ctx) == nil
}

// checkHealth runs every probe once and stamps the result.
func checkHealth(ctx context.Context, probes healthProbes, now time.Time) HealthStatus {
	return HealthStatus{
		Mongo:     probeOK(ctx, probes.Mongo),
		AuthCache: probeOK(ctx, probes.AuthCache),
		OTPCache:  probeOK(ctx, probes.OTPCache),
		Queue:     probeOK(ctx, probes.Queue),
		CheckedAt: now,
	}
}

func redisProbe(client *redis.Client) func(context.Context) error {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// StartHealthMonitor checks every dependency immediately, then once a minute,
// and keeps the in-memory snapshot current for the health endpoint.
func StartHealthMonitor(mongoClient *mongo.Client, authCache, otpCache, queue *redis.Client) {
	probes := healthProbes{
		AuthCache: redisProbe(authCache),
		OTPCache:  redisProbe(otpCache),
		Queue:     redisProbe(queue),
	}
	if mongoClient != nil {
		probes.Mongo = func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		}
	}

	go func() {
		ctx := context.Background()
		storeHealth(checkHealth(ctx, probes, time.Now()))

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			storeHealth(checkHealth(ctx, probes, time.Now()))
		}
	}()
}
