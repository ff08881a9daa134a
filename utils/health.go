package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	healthCheckInterval = 60 * time.Second
	healthCheckTimeout  = 5 * time.Second
)

// HealthStatus is a point-in-time snapshot of the backing stores the booking
// engine depends on: MongoDB plus the redis clients (auth cache, task queue).
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	lastHealth   HealthStatus
	lastHealthMu sync.RWMutex
)

// GetHealthStatus returns the most recent snapshot. It is zero-valued until
// the first monitor cycle completes.
func GetHealthStatus() HealthStatus {
	lastHealthMu.RLock()
	defer lastHealthMu.RUnlock()
	return lastHealth
}

// StartHealthMonitor pings the given clients on a fixed interval and keeps
// the latest snapshot in memory for the health endpoint.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)

			redisHealth := make([]bool, 0, len(redisClients))
			for _, client := range redisClients {
				redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
			}
			mongoHealthy := mongoClient.Ping(ctx, nil) == nil
			cancel()

			lastHealthMu.Lock()
			lastHealth = HealthStatus{
				Mongo:     mongoHealthy,
				Redis:     redisHealth,
				CheckedAt: time.Now().UTC(),
			}
			lastHealthMu.Unlock()
		}
	}()
}
