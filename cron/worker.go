package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"coursecart/config"
	catalogRepo "coursecart/database/repository/catalog"
	"coursecart/models"
)

const TypeCatalogWarm = "catalog:warm"

const cycleSnapshotPrefix = "catalog:cycle:"

// CatalogWarmPayload identifies the cycle to pre-fetch.
type CatalogWarmPayload struct {
	CycleID string `json:"cycleId"`
}

// SnapshotStore keeps short-lived cycle snapshots in Redis so confirm-time
// gathering starts warm instead of walking the catalog day by day.
type SnapshotStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewSnapshotStore returns a SnapshotStore on the given Redis client.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{Client: client, TTL: ttl}
}

// Save stores the cycle's sessions as one JSON blob.
func (s *SnapshotStore) Save(ctx context.Context, cycleID string, sessions []models.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal cycle snapshot: %w", err)
	}
	if err := s.Client.Set(ctx, cycleSnapshotPrefix+cycleID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("store cycle snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot for a cycle, if one is still live.
func (s *SnapshotStore) Load(ctx context.Context, cycleID string) ([]models.Session, bool) {
	data, err := s.Client.Get(ctx, cycleSnapshotPrefix+cycleID).Result()
	if err != nil {
		return nil, false
	}
	var sessions []models.Session
	if err := json.Unmarshal([]byte(data), &sessions); err != nil {
		return nil, false
	}
	return sessions, true
}

// Warmer enqueues catalog:warm tasks; enqueueing is best effort.
type Warmer struct {
	client *asynq.Client
}

// NewWarmer returns a Warmer speaking to the queue Redis DB.
func NewWarmer() *Warmer {
	return &Warmer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// WarmCycle schedules a background pre-fetch of the cycle's sessions.
func (w *Warmer) WarmCycle(cycleID string) {
	payload, err := json.Marshal(CatalogWarmPayload{CycleID: cycleID})
	if err != nil {
		log.Printf("[CatalogWarm] invalid payload for cycle %s: %v", cycleID, err)
		return
	}
	if _, err := w.client.Enqueue(asynq.NewTask(TypeCatalogWarm, payload)); err != nil {
		log.Printf("[CatalogWarm] failed to enqueue warm task for cycle %s: %v", cycleID, err)
	}
}

// InitCatalogWarmWorker runs the async worker in background.
func InitCatalogWarmWorker(catalog catalogRepo.SessionCatalog, snapshots *SnapshotStore) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCatalogWarm, handleCatalogWarmTask(catalog, snapshots))

	// Start async worker with retry logic
	go func() {
		log.Println("[CatalogWarm] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CatalogWarm] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CatalogWarm] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCatalogWarmTask(catalog catalogRepo.SessionCatalog, snapshots *SnapshotStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p CatalogWarmPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CatalogWarm] invalid payload: %v", err)
			return err
		}

		sessions, err := catalog.FetchByCycle(ctx, p.CycleID)
		if err != nil {
			log.Printf("[CatalogWarm] fetch cycle %s failed: %v", p.CycleID, err)
			return err
		}
		if err := snapshots.Save(ctx, p.CycleID, sessions); err != nil {
			log.Printf("[CatalogWarm] snapshot cycle %s failed: %v", p.CycleID, err)
			return err
		}
		log.Printf("[CatalogWarm] warmed cycle %s with %d sessions", p.CycleID, len(sessions))
		return nil
	}
}
