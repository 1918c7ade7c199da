package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"payrun/internal/app/server"
	"payrun/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	if err := server.Run(cfg); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
