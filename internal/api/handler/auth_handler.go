package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

// AuthHandler handles token issuance and stateless token validation.
type AuthHandler struct {
	users  ports.UserService
	tokens ports.TokenService
}

func NewAuthHandler(users ports.UserService, tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Token handles POST /v1/auth/token — password authentication.
//
// @Summary      Authenticate and obtain a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Authenticate handles POST /v1/auth/authenticate — re-checks credentials for
// an already-authenticated caller and answers with a bare boolean.
//
// @Summary      Check a set of credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Login credentials"
// @Success      200   {boolean} boolean
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Security     BearerAuth
// @Router       /v1/auth/authenticate [post]
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, true)
}

// Validate handles POST /v1/auth/validate — verifies the bearer token and
// echoes its claims. Stateless: only signature and expiry are checked.
func (h *AuthHandler) Validate(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	claims, err := h.tokens.Verify(parts[1])
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenClaimsResponse{
		ID:       claims.UserID,
		Username: claims.Username,
	})
}
