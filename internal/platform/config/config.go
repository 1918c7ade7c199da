package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	Environment   string
	MigrationsDir string
	PayslipDir    string
	RunMigrations bool
	RunSeed       bool
}

func Load() Config {
	return Config{
		Addr:          getEnv("APP_ADDR", ":8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Environment:   getEnv("APP_ENV", "development"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		PayslipDir:    getEnv("PAYSLIP_DIR", "storage/payslips"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:       getEnvBool("RUN_SEED", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("APP_ADDR must not be empty")
	}
	if strings.TrimSpace(c.MigrationsDir) == "" {
		return fmt.Errorf("MIGRATIONS_DIR must not be empty")
	}
	if strings.TrimSpace(c.PayslipDir) == "" {
		return fmt.Errorf("PAYSLIP_DIR must not be empty")
	}
	return nil
}
