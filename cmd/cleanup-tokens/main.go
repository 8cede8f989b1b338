// Command cleanup-tokens deletes expired and revoked refresh tokens.
// It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/insight-backend/internal/adapter/postgres"
	"github.com/heartmarshall/insight-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/insight-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/insight-backend/internal/app"
	"github.com/heartmarshall/insight-backend/internal/auth"
	"github.com/heartmarshall/insight-backend/internal/config"
	authsvc "github.com/heartmarshall/insight-backend/internal/service/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log, "cleanup-tokens")

	if code := run(logger, cfg); code != 0 {
		os.Exit(code)
	}
}

func run(logger *slog.Logger, cfg *config.Config) int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		return 1
	}
	defer pool.Close()

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.ResetTokenTTL)
	svc := authsvc.NewService(logger, user.New(pool), token.New(pool), postgres.NewTxManager(pool), jwt, nil, cfg.Auth)

	// The service logs the failure itself.
	deleted, err := svc.CleanupExpiredTokens(ctx)
	if err != nil {
		return 1
	}

	logger.Info("token cleanup completed", slog.Int("deleted", deleted))
	return 0
}
