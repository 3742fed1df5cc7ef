package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"coursecart/models"
)

const episodeKeyPrefix = "selection:episode:"

// Store is the arena that carries a SelectionState between engine calls,
// including episodes handed off from another screen. Episodes expire on
// their own if neither confirmed nor cancelled.
type Store interface {
	Save(ctx context.Context, state *models.SelectionState) error
	Get(ctx context.Context, episodeID string) (*models.SelectionState, error)
	Delete(ctx context.Context, episodeID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Store keeping episodes in Redis with the given TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Save(ctx context.Context, state *models.SelectionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal selection episode: %w", err)
	}
	if err := s.client.Set(ctx, episodeKeyPrefix+state.EpisodeID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store selection episode: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, episodeID string) (*models.SelectionState, error) {
	data, err := s.client.Get(ctx, episodeKeyPrefix+episodeID).Result()
	if err == redis.Nil {
		return nil, ErrEpisodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load selection episode: %w", err)
	}
	var state models.SelectionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("parse selection episode: %w", err)
	}
	return &state, nil
}

func (s *redisStore) Delete(ctx context.Context, episodeID string) error {
	if err := s.client.Del(ctx, episodeKeyPrefix+episodeID).Err(); err != nil {
		return fmt.Errorf("delete selection episode: %w", err)
	}
	return nil
}
