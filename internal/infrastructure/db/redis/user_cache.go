package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/userhub/account-service/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// UserCache is a best-effort read-through cache of user snapshots backed by
// Redis. Key format: user:<id>. Snapshots never include the credential hash
// (it is excluded from the JSON encoding); cache failures degrade to a miss.
type UserCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client, log zerolog.Logger) *UserCache {
	return &UserCache{client: client, log: log}
}

// Get returns the cached snapshot for id, or a miss.
func (c *UserCache) Get(ctx context.Context, id int64) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Int64("user_id", id).Msg("user cache read failed")
		}
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		c.log.Warn().Err(err).Int64("user_id", id).Msg("user cache entry corrupt")
		return nil, false
	}
	return &user, true
}

// Set stores a snapshot of user (expires after cacheTTL).
func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	snapshot := *user
	snapshot.Credential = nil

	raw, err := json.Marshal(&snapshot)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(user.ID), raw, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Int64("user_id", user.ID).Msg("user cache write failed")
	}
}

// Invalidate drops the snapshot for id. Called on every mutation.
func (c *UserCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("user_id", id).Msg("user cache invalidation failed")
	}
}

func (c *UserCache) key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}
