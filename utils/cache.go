// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"coursecart/config"
)

var (
	// EpisodeCacheClient holds in-progress selection episodes.
	EpisodeCacheClient *redis.Client
	// EnrollmentCacheClient caches enrollment facts.
	EnrollmentCacheClient *redis.Client
	// SnapshotCacheClient holds warm cycle snapshots.
	SnapshotCacheClient *redis.Client
)

// InitEpisodeCache initializes the Redis client for selection episodes.
func InitEpisodeCache() {
	EpisodeCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEpisodeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := EpisodeCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Episodes): %v", err)
	}
}

// GetEpisodeCacheClient returns the client for selection episodes.
func GetEpisodeCacheClient() *redis.Client {
	if EpisodeCacheClient == nil {
		InitEpisodeCache()
	}
	return EpisodeCacheClient
}

// InitEnrollmentCache initializes the Redis client for enrollment facts.
func InitEnrollmentCache() {
	EnrollmentCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEnrollmentDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := EnrollmentCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Enrollment): %v", err)
	}
}

// GetEnrollmentCacheClient returns the client for enrollment facts.
func GetEnrollmentCacheClient() *redis.Client {
	if EnrollmentCacheClient == nil {
		InitEnrollmentCache()
	}
	return EnrollmentCacheClient
}

// InitSnapshotCache initializes the Redis client for cycle snapshots.
func InitSnapshotCache() {
	SnapshotCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSnapshotDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SnapshotCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Snapshots): %v", err)
	}
}

// GetSnapshotCacheClient returns the client for cycle snapshots.
func GetSnapshotCacheClient() *redis.Client {
	if SnapshotCacheClient == nil {
		InitSnapshotCache()
	}
	return SnapshotCacheClient
}
