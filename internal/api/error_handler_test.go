package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userhub/account-service/internal/core/domain"
)

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: email is not well-formed", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: you can not see other users", domain.ErrUnauthorized), http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("error %v: expected status %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_AuthFailureKeepsGenericMessage(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(fmt.Errorf("wrap: %w", domain.ErrInvalidCredentials), c)

	want := `{"error":"please check your login credentials"}`
	if got := rec.Body.String(); got != want+"\n" && got != want {
		t.Fatalf("unexpected body: %s", got)
	}
}
