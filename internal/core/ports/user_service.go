package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// CreateUserInput carries the self-service registration fields. The admin
// flag is deliberately absent: it is set only by out-of-band provisioning.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateUserInput carries the fields a user (or an admin) may change through
// the update path. A non-nil Password rotates the credential.
type UpdateUserInput struct {
	Name           *string
	Email          *string
	EmailConfirmed *bool
	Password       *string
}

// UserService is the user directory: record lifecycle, policy-checked reads
// and writes, and password authentication.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Find(ctx context.Context, filter UserFilter, actor domain.Actor) ([]domain.User, error)
	Get(ctx context.Context, id int64, actor domain.Actor) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput, actor domain.Actor) (*domain.User, error)
	Delete(ctx context.Context, id int64, hard bool, actor domain.Actor) (*domain.User, error)

	// Authenticate verifies email+password and returns a signed session
	// token. Unknown email and wrong password both fail with the same
	// domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (string, error)

	// ResolveActor verifies a bearer token and resolves it to a live actor.
	// Tokens naming a missing or soft-deleted user fail with
	// domain.ErrInvalidToken.
	ResolveActor(ctx context.Context, token string) (domain.Actor, error)
}
