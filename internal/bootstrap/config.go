package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/isre1late/json-samples/config"
	apperrors "github.com/isre1late/json-samples/internal/errors"
	"github.com/joho/godotenv"
)

// InitLogger initializes the structured logger and installs it as the default.
func InitLogger(level slog.Level) *slog.Logger {
	return initLogger(os.Stdout, level)
}

func initLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from an optional .env file and the environment.
// Variables already present in the environment take precedence over .env.
func LoadConfig(envFiles ...string) (config.AppConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, apperrors.Wrap(err, apperrors.ErrCodeValidation, "parse config")
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return cfg, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid config")
	}
	return cfg, nil
}
