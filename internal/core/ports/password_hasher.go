package ports

import "context"

// PasswordHasher hashes and verifies passwords. Both operations are
// CPU-bound; implementations isolate the work from the request-dispatch path
// and honour ctx cancellation while waiting for capacity.
type PasswordHasher interface {
	// Hash applies a salted one-way transform; the same input yields a
	// different hash on every call.
	Hash(ctx context.Context, password string) (string, error)

	// Verify compares password against hash using the primitive's own
	// constant-time comparison. A mismatch and an unparseable hash are
	// indistinguishable to the caller.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
