package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/api/middleware"
	"github.com/userhub/account-service/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and performs a
// fast-fail check before any service call: a missing actor means the
// middleware did not run for this route.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := c.Get(middleware.ActorKey).(domain.Actor)
	if !ok {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
