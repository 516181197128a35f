package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/account-service/internal/pkg/config"
)

// pingTimeout bounds the startup connectivity check; the cache degrades to
// misses at runtime, so only the initial ping is allowed to fail hard.
const pingTimeout = 5 * time.Second

// Connect initialises the Redis client backing the user cache and verifies
// connectivity with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
