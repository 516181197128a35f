package ports

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID   int64
	Username string
}

// TokenService issues and verifies signed, time-bound identity tokens.
// Verification is all-or-nothing: a bad signature, malformed structure, or
// expired token yields domain.ErrInvalidToken and no claims.
type TokenService interface {
	Issue(userID int64, email string) (string, error)
	Verify(token string) (*TokenClaims, error)
}
