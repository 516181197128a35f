package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// UserCache is a best-effort read-through cache of user snapshots. A miss or
// a cache error is never fatal; callers fall through to the repository.
// Credential hashes must never be stored in the cache.
type UserCache interface {
	Get(ctx context.Context, id int64) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, id int64)
}
