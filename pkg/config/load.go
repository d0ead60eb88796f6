package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "bank"

// Load reads optional .env files and then the process environment into an
// App. Missing .env files are fine; the process environment always wins
// over file values.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()

	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using process environment")
		}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			logger.Warn("could not load environment file", "path", path, "error", err)
		}
	}

	var cfg App
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	logger.Info("config loaded",
		"env", cfg.Env,
		"data_dir", cfg.Data.Dir,
		"log_level", cfg.Log.Level,
		"accrual_spec", cfg.Accrual.Spec,
	)
	return &cfg, nil
}
