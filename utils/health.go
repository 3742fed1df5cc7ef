package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus reports reachability of the backing stores: the catalog
// database and each redis tier the service depends on.
type HealthStatus struct {
	Mongo      bool      `json:"mongo"`
	Episodes   bool      `json:"episodes"`
	Enrollment bool      `json:"enrollment"`
	Snapshots  bool      `json:"snapshots"`
	CheckedAt  time.Time `json:"checkedAt"`
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

// StartHealthMonitor pings the stores once a minute and keeps the result
// in memory for the health endpoint.
func StartHealthMonitor(episodes, enrollment, snapshots *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			status := HealthStatus{
				Mongo:      mongoClient.Ping(ctx, nil) == nil,
				Episodes:   episodes.Ping(ctx).Err() == nil,
				Enrollment: enrollment.Ping(ctx).Err() == nil,
				Snapshots:  snapshots.Ping(ctx).Err() == nil,
				CheckedAt:  time.Now(),
			}

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
