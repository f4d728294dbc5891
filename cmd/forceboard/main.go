package main

import (
	"github.com/forceboard-dev/forceboard/db"
	"github.com/forceboard-dev/forceboard/internal/auth"
	"github.com/forceboard-dev/forceboard/internal/config"
	"github.com/forceboard-dev/forceboard/internal/logger"
	"github.com/forceboard-dev/forceboard/internal/router"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine in deployed environments; config falls back to
	// the process environment.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()

	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	if err := logger.Init(cfg.Mode); err != nil {
		logger.Fatal("failed to initialize logger", "error", err)
	}
	defer logger.Sync()

	if err := auth.InitJWTSecret(cfg.JWT.Secret); err != nil {
		logger.Fatal("failed to initialize JWT", "error", err)
	}

	if err := db.ConnectDatabase(cfg.Database.DSN); err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}

	r := router.NewRouter(cfg)

	logger.Info("starting server", "port", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
}
