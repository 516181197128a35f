package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/account-service/internal/api/handler"
	"github.com/userhub/account-service/internal/api/middleware"
	"github.com/userhub/account-service/internal/core/ports"
	"github.com/userhub/account-service/internal/core/service"
	mongodb "github.com/userhub/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/account-service/internal/infrastructure/db/redis"
	"github.com/userhub/account-service/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The hasher is owned by the caller: its worker pool must already be started.
func NewRouter(db *mongo.Database, rdb *redis.Client, hasher ports.PasswordHasher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	repo := mongodb.NewUserRepository(db)
	cache := redisdb.NewUserCache(rdb, log)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := service.NewUserService(repo, tokens, hasher, cache, log)

	userHandler := handler.NewUserHandler(users)
	authHandler := handler.NewAuthHandler(users, tokens)
	requireActor := middleware.Auth(users)

	// --- Public routes ---
	e.POST("/v1/users", userHandler.Create)
	e.POST("/v1/auth/token", authHandler.Token)
	e.POST("/v1/auth/validate", authHandler.Validate)

	// --- Bearer-authenticated routes ---
	e.POST("/v1/auth/authenticate", authHandler.Authenticate, requireActor)

	directory := e.Group("/v1/users", requireActor)
	directory.GET("", userHandler.List)
	directory.GET("/:id", userHandler.Get)
	directory.PATCH("/:id", userHandler.Update)
	directory.DELETE("/:id", userHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
