// Package enrollment supplies the externally owned fact of whether a user
// already holds a place in a session. The selection engine treats it as an
// opaque predicate.
package enrollment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	enrollmentRepo "coursecart/database/repository/enrollment"
	"coursecart/utils"
)

// Facts answers enrollment predicates per user and session.
type Facts interface {
	IsEnrolled(ctx context.Context, userID, sessionID string) (bool, error)
}

// CachedFacts fronts the enrollment repository with a short-lived Redis
// cache so repeated tryAdd attempts against the same session do not keep
// hitting the database.
type CachedFacts struct {
	Repo  enrollmentRepo.EnrollmentRepository
	Cache *redis.Client
	TTL   time.Duration
}

// NewCachedFacts returns Facts backed by repo with cache in front.
func NewCachedFacts(repo enrollmentRepo.EnrollmentRepository, cache *redis.Client, ttl time.Duration) *CachedFacts {
	return &CachedFacts{Repo: repo, Cache: cache, TTL: ttl}
}

func (f *CachedFacts) IsEnrolled(ctx context.Context, userID, sessionID string) (bool, error) {
	key := fmt.Sprintf("enrollment:%s:%s", userID, sessionID)

	if val, err := f.Cache.Get(ctx, key).Result(); err == nil {
		return val == "1", nil
	} else if err != redis.Nil {
		utils.GetLogger().Warn("enrollment cache read failed", zap.Error(err))
	}

	enrolled, err := f.Repo.IsEnrolled(ctx, userID, sessionID)
	if err != nil {
		return false, err
	}

	val := "0"
	if enrolled {
		val = "1"
	}
	if err := f.Cache.Set(ctx, key, val, f.TTL).Err(); err != nil {
		utils.GetLogger().Warn("enrollment cache write failed", zap.Error(err))
	}
	return enrolled, nil
}
