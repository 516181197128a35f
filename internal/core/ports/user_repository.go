package ports

import (
	"context"
	"time"

	"github.com/userhub/account-service/internal/core/domain"
)

// UserFilter narrows a directory listing. Zero values mean "not filtered".
// Filters are strongly typed at this boundary; any string parsing belongs to
// the request layer.
type UserFilter struct {
	IDs                []int64
	Name               string // substring match
	Email              string // exact match
	UpdatedSince       time.Time
	Offset             int64
	Limit              int64 // capped by the repository default when zero
	IncludeCredentials bool
}

// UserChanges is a partial update of a user record. Nil fields are left
// untouched. CredentialHash, when set, rotates the credential in the same
// atomic write as the user fields.
type UserChanges struct {
	Name           *string
	Email          *string
	EmailConfirmed *bool
	CredentialHash *string
}

// UserRepository defines the persistence contract for user records. Every
// mutation that touches both the user and its credential must be atomic: a
// crash leaves either the pre- or post-state, never a user without its
// paired credential write.
type UserRepository interface {
	// Create persists a new user together with its credential and returns the
	// stored record with its assigned id. Fails with domain.ErrEmailTaken on
	// a unique-email violation.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByID returns the record for id or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id int64, includeCredential bool) (*domain.User, error)

	// FindByEmail returns the non-deleted record for email, credential
	// included, or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Find returns records matching the filter, paginated.
	Find(ctx context.Context, filter UserFilter) ([]domain.User, error)

	// Update applies changes to a non-soft-deleted record, stamps updated_at,
	// and returns the post-update record. Fails with domain.ErrUserNotFound
	// when the record is missing or already soft-deleted.
	Update(ctx context.Context, id int64, changes UserChanges) (*domain.User, error)

	// SoftDelete clears the email, sets the sentinel name, removes the
	// credential, stamps updated_at, and returns the post-delete record.
	// Fails with domain.ErrUserNotFound when missing or already soft-deleted.
	SoftDelete(ctx context.Context, id int64) (*domain.User, error)

	// HardDelete permanently removes the record and returns the pre-delete
	// snapshot, or domain.ErrUserNotFound.
	HardDelete(ctx context.Context, id int64) (*domain.User, error)
}
