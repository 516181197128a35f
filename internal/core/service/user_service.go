package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

// validate backs the directory's own email well-formedness check. Request
// schemas are validated at the API boundary; this instance is the core's last
// line before a malformed address reaches storage.
var validate = validator.New()

// UserService owns the user record lifecycle. Every operation consults
// exactly one policy decision before touching storage; a denial performs no
// mutation and reads no unrelated records.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	hasher ports.PasswordHasher
	cache  ports.UserCache
	logger zerolog.Logger
}

// NewUserService wires the directory with its collaborators. cache may be
// nil, in which case every read goes to the repository.
func NewUserService(repo ports.UserRepository, tokens ports.TokenService, hasher ports.PasswordHasher, cache ports.UserCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, hasher: hasher, cache: cache, logger: logger}
}

// Create registers a new user and its credential as one atomic write. The
// returned record never carries the password hash.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Name == domain.DeletedUserName {
		return nil, fmt.Errorf("%w: name %q is reserved", domain.ErrValidation, domain.DeletedUserName)
	}
	if err := validate.Var(input.Email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email is not well-formed", domain.ErrValidation)
	}
	if !domain.StrongPassword(input.Password) {
		return nil, fmt.Errorf("%w: password needs an upper case letter, a lower case letter and a digit or special character", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:       input.Name,
		Email:      input.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
		Credential: &domain.Credential{Hash: hash, UpdatedAt: now},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user created")

	created.Credential = nil
	return created, nil
}

// Find lists users matching the filter. Non-admin actors have the filter
// silently replaced with their own id; pagination is preserved.
func (s *UserService) Find(ctx context.Context, filter ports.UserFilter, actor domain.Actor) ([]domain.User, error) {
	if !actor.CanListAll() {
		filter = ports.UserFilter{
			IDs:                []int64{actor.ID},
			Offset:             filter.Offset,
			Limit:              filter.Limit,
			IncludeCredentials: filter.IncludeCredentials,
		}
	}
	return s.repo.Find(ctx, filter)
}

// Get returns a single record, cache first.
func (s *UserService) Get(ctx context.Context, id int64, actor domain.Actor) (*domain.User, error) {
	if !actor.CanView(id) {
		return nil, fmt.Errorf("%w: you can not see other users", domain.ErrUnauthorized)
	}

	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, id); ok {
			return user, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}

// Update applies field changes and, when a new password is supplied, rotates
// the credential in the same atomic write. Soft-deleted records are immutable
// here and surface as not found.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput, actor domain.Actor) (*domain.User, error) {
	if !actor.CanModify(id) {
		return nil, fmt.Errorf("%w: you can not modify other users", domain.ErrUnauthorized)
	}

	changes := ports.UserChanges{
		Name:           input.Name,
		Email:          input.Email,
		EmailConfirmed: input.EmailConfirmed,
	}
	if input.Name != nil && *input.Name == domain.DeletedUserName {
		return nil, fmt.Errorf("%w: name %q is reserved", domain.ErrValidation, domain.DeletedUserName)
	}
	if input.Email != nil {
		if err := validate.Var(*input.Email, "required,email"); err != nil {
			return nil, fmt.Errorf("%w: email is not well-formed", domain.ErrValidation)
		}
	}
	if input.Password != nil {
		if !domain.StrongPassword(*input.Password) {
			return nil, fmt.Errorf("%w: password needs an upper case letter, a lower case letter and a digit or special character", domain.ErrValidation)
		}
		hash, err := s.hasher.Hash(ctx, *input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		changes.CredentialHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	s.logger.Info().Int64("user_id", id).Bool("credential_rotated", changes.CredentialHash != nil).Msg("user updated")

	updated.Credential = nil
	return updated, nil
}

// Delete soft-deletes by default and hard-deletes on request. Hard delete is
// admin-only, including for the actor's own record.
func (s *UserService) Delete(ctx context.Context, id int64, hard bool, actor domain.Actor) (*domain.User, error) {
	if hard {
		if !actor.CanHardDelete(id) {
			return nil, fmt.Errorf("%w: only admins can permanently delete users", domain.ErrUnauthorized)
		}
		removed, err := s.repo.HardDelete(ctx, id)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Invalidate(ctx, id)
		}
		s.logger.Info().Int64("user_id", id).Msg("user hard-deleted")
		removed.Credential = nil
		return removed, nil
	}

	if !actor.CanSoftDelete(id) {
		return nil, fmt.Errorf("%w: you can not delete other users", domain.ErrUnauthorized)
	}
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.logger.Info().Int64("user_id", id).Msg("user soft-deleted")
	return deleted, nil
}

// Authenticate verifies email+password and issues a session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if user.Credential == nil {
		// soft-deleted records hold no credential and can never authenticate
		return "", domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(ctx, password, user.Credential.Hash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Email)
}

// ResolveActor turns a bearer token into a live actor. The record is
// re-resolved from the store on every call so that tokens of deleted users
// stop working before their expiry.
func (s *UserService) ResolveActor(ctx context.Context, token string) (domain.Actor, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Actor{}, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID, false)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Actor{}, domain.ErrInvalidToken
		}
		return domain.Actor{}, err
	}
	if user.SoftDeleted() {
		return domain.Actor{}, domain.ErrInvalidToken
	}

	return user.Actor(), nil
}
