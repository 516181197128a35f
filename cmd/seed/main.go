// Command seed provisions the initial admin account. This is the only path
// that sets the admin flag; the HTTP surface never accepts it.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/userhub/account-service/internal/core/domain"
	mongodb "github.com/userhub/account-service/internal/infrastructure/db/mongo"
	"github.com/userhub/account-service/internal/infrastructure/queue"
	"github.com/userhub/account-service/pkg/logger"
)

type seedConfig struct {
	Mongo struct {
		URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
		Database string `env:"MONGO_DB,  default=account_service"`
	}

	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    required"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, required"`
	AdminName     string `env:"SEED_ADMIN_NAME,     default=Admin"`
}

func main() {
	log := logger.Init(logger.Options{Level: "info", Pretty: true})

	var cfg seedConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Fatal().Err(err).Msg("seed configuration invalid")
	}
	if !domain.StrongPassword(cfg.AdminPassword) {
		log.Fatal().Msg("admin password fails the strength rule")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if existing, err := repo.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		log.Info().Int64("user_id", existing.ID).Msg("admin already provisioned")
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}

	pool := queue.NewHashPool(1, log)
	pool.Start(ctx)

	hash, err := pool.Hash(ctx, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	admin, err := repo.Create(ctx, &domain.User{
		Name:           cfg.AdminName,
		Email:          cfg.AdminEmail,
		Admin:          true,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
		Credential:     &domain.Credential{Hash: hash, UpdatedAt: now},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}

	log.Info().Int64("user_id", admin.ID).Str("email", admin.Email).Msg("admin provisioned")
}
