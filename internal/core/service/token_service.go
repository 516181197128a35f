package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

// TokenService issues and verifies HS256-signed session tokens. The signing
// secret is process-wide configuration loaded once at startup; there is no
// key rotation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// sessionClaims is the wire shape of a session token: the user id, the email
// under the legacy "username" key, plus issued-at and expiry.
type sessionClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token asserting {id, username} for the configured
// validity window.
func (s *TokenService) Issue(userID int64, email string) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		UserID:   userID,
		Username: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates signature and expiry. Any failure, whether a bad
// signature, malformed structure, or expiry, yields domain.ErrInvalidToken;
// a token is never partially trusted.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	var claims sessionClaims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{UserID: claims.UserID, Username: claims.Username}, nil
}
