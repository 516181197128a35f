package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/core/domain"
)

// ActorKey is the context key under which the resolved actor is stored.
const ActorKey = "actor"

// ActorResolver turns a bearer token into a live actor. Tokens naming a
// missing or soft-deleted user must fail resolution.
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (domain.Actor, error)
}

// Auth validates the bearer token and injects the resolved actor into the
// request context. The actor is re-resolved from the store on every request,
// so a still-signed token stops working the moment its user is deleted.
func Auth(resolver ActorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := resolver.ResolveActor(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				// storage failures are not the caller's fault
				return err
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
