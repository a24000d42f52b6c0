package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	HTTPAddr     string
	DatabasePath string
	Env          string
}

func Load() (Config, error) {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	dbPath := os.Getenv("PRTRACKER_DB")
	if dbPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user config dir: %w", err)
		}
		dbPath = filepath.Join(configDir, "PRTracker", "database.sqlite")
	}

	return Config{
		HTTPAddr:     addr,
		DatabasePath: dbPath,
		Env:          env,
	}, nil
}
