package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	UpdateDelay time.Duration
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}

	updateDelay := 1500 * time.Millisecond
	if raw := os.Getenv("UPDATE_DELAY_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid UPDATE_DELAY_MS value %q: %w", raw, err)
		}
		updateDelay = time.Duration(ms) * time.Millisecond
	}

	return &Config{
		AppPort:     appPort,
		DatabaseURL: dbURL,
		UpdateDelay: updateDelay,
	}, nil
}
