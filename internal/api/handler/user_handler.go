package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user directory operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /v1/users — public self-service registration.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// List handles GET /v1/users. Filters are honoured for admins only;
// non-admin actors receive a listing narrowed to their own record.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        ids                  query     []int   false  "Restrict to these ids"
// @Param        name                 query     string  false  "Substring match on display name"
// @Param        email                query     string  false  "Exact email match"
// @Param        updated_since        query     string  false  "RFC 3339 timestamp"
// @Param        include_credentials  query     bool    false  "Join credential metadata"
// @Param        offset               query     int     false  "Pagination offset"
// @Param        limit                query     int     false  "Pagination limit (default 100)"
// @Success      200  {array}   domain.User
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	filter := ports.UserFilter{
		IDs:                q.IDs,
		Name:               q.Name,
		Email:              q.Email,
		Offset:             q.Offset,
		Limit:              q.Limit,
		IncludeCredentials: q.IncludeCredentials,
	}
	if q.UpdatedSince != "" {
		ts, err := time.Parse(time.RFC3339, q.UpdatedSince)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "updated_since must be RFC 3339")
		}
		filter.UpdatedSince = ts
	}

	users, err := h.service.Find(c.Request().Context(), filter, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /v1/users/:id. A supplied password rotates the
// credential atomically with the field update. The admin flag is not part of
// the schema and can never be set here.
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		EmailConfirmed: req.EmailConfirmed,
		Password:       req.Password,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id[?hard=true]. Soft delete by default;
// hard delete is admin-only.
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	hard := false
	if raw := c.QueryParam("hard"); raw != "" {
		hard, err = strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "hard must be a boolean")
		}
	}

	user, err := h.service.Delete(c.Request().Context(), id, hard, actor)
	if err != nil {
		return err
	}

	mode := "soft"
	if hard {
		mode = "hard"
	}
	metrics.UsersDeletedTotal.WithLabelValues(mode).Inc()

	return c.JSON(http.StatusOK, user)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}
