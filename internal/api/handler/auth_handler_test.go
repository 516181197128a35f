package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

type stubTokenService struct {
	claims *ports.TokenClaims
	err    error
}

func (s *stubTokenService) Issue(int64, string) (string, error) {
	return "", nil
}

func (s *stubTokenService) Verify(string) (*ports.TokenClaims, error) {
	return s.claims, s.err
}

func TestAuthHandler_Token(t *testing.T) {
	svc := &stubUserService{token: "signed-token"}
	h := NewAuthHandler(svc, &stubTokenService{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/token", `{"email":"peyman@example.com","password":"mPmP123@"}`)
	if err := h.Token(c); err != nil {
		t.Fatalf("token failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Token != "signed-token" {
		t.Fatalf("unexpected token: %q", got.Token)
	}
}

func TestAuthHandler_Token_InvalidCredentials(t *testing.T) {
	svc := &stubUserService{err: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, &stubTokenService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/token", `{"email":"peyman@example.com","password":"WrongPass1"}`)
	if err := h.Token(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Token_MalformedEmail(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubTokenService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/token", `{"email":"nope","password":"mPmP123@"}`)
	err := h.Token(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Authenticate(t *testing.T) {
	svc := &stubUserService{token: "signed-token"}
	h := NewAuthHandler(svc, &stubTokenService{})

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/authenticate", `{"email":"peyman@example.com","password":"mPmP123@"}`)
	if err := h.Authenticate(c); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// the body is a bare boolean, no token leaks out
	if got := strings.TrimSpace(rec.Body.String()); got != "true" {
		t.Fatalf("expected bare true, got %q", got)
	}
}

func TestAuthHandler_Authenticate_InvalidCredentials(t *testing.T) {
	svc := &stubUserService{err: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, &stubTokenService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/authenticate", `{"email":"peyman@example.com","password":"WrongPass1"}`)
	if err := h.Authenticate(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Validate(t *testing.T) {
	tokens := &stubTokenService{claims: &ports.TokenClaims{UserID: 42, Username: "peyman@example.com"}}
	h := NewAuthHandler(&stubUserService{}, tokens)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/validate", "")
	c.Request().Header.Set("Authorization", "Bearer some-token")

	if err := h.Validate(c); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got tokenClaimsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 42 || got.Username != "peyman@example.com" {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestAuthHandler_Validate_BadToken(t *testing.T) {
	tokens := &stubTokenService{err: domain.ErrInvalidToken}
	h := NewAuthHandler(&stubUserService{}, tokens)

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/validate", "")
	c.Request().Header.Set("Authorization", "Bearer expired")

	if err := h.Validate(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthHandler_Validate_MissingHeader(t *testing.T) {
	h := NewAuthHandler(&stubUserService{}, &stubTokenService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/validate", "")
	err := h.Validate(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
