package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/danieltanr/webauth/config"
	"github.com/danieltanr/webauth/db"
	"github.com/danieltanr/webauth/internal/auth/handler"
	repo "github.com/danieltanr/webauth/internal/auth/repository/postgres"
	"github.com/danieltanr/webauth/internal/auth/service"
	"github.com/danieltanr/webauth/internal/mailer"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	smtpMailer, err := mailer.New(cfg)
	if err != nil {
		logger.Fatal("failed to create mailer", zap.Error(err))
	}

	userRepo := repo.NewPostgresRepository(pool)
	tokenService := service.NewTokenService(cfg.Secret, cfg.SessionExpiryHours)
	userService := service.NewUserService(userRepo, smtpMailer, cfg, logger)
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
