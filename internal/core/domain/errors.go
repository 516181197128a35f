package domain

import "errors"

var (
	// ErrValidation covers malformed input rejected before any storage access.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is a policy denial: the actor may not perform the
	// requested operation on the target record.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is the single undifferentiated authentication
	// failure. The message is the same for an unknown email and a wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("please check your login credentials")

	// ErrUserNotFound covers both a missing id and a mutation aimed at an
	// already soft-deleted record.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken signals a unique-email violation among non-deleted users.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidToken covers bad signature, malformed structure, and expiry.
	ErrInvalidToken = errors.New("invalid token")
)
