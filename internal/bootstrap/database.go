package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/isre1late/json-samples/config"
	apperrors "github.com/isre1late/json-samples/internal/errors"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

const defaultPingTimeout = 5 * time.Second

// DatabaseConfig contains configuration for the export's database connection.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	PingTimeout time.Duration
	Logger      *slog.Logger
}

// BuildDSN renders cfg as a keyword/value connection string. Empty settings
// are left out so the driver applies its libpq defaults: an unset host resolves
// to the Unix-socket directory and an unset password falls back to ~/.pgpass.
// Values are always quoted, so socket paths and credentials need no escaping
// beyond backslash and quote.
func BuildDSN(cfg config.DBConfig) string {
	port := ""
	if cfg.Port > 0 {
		port = strconv.Itoa(cfg.Port)
	}
	settings := []struct{ key, value string }{
		{"host", cfg.Host},
		{"port", port},
		{"user", cfg.User},
		{"password", cfg.Password},
		{"dbname", cfg.Name},
		{"sslmode", cfg.SSLMode},
	}

	parts := make([]string, 0, len(settings))
	for _, s := range settings {
		if s.value == "" {
			continue
		}
		parts = append(parts, s.key+"="+quoteDSNValue(s.value))
	}
	return strings.Join(parts, " ")
}

var dsnValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnValueEscaper.Replace(v) + "'"
}

// ConnectDB opens the PostgreSQL handle and verifies it with a ping. Failures
// are reported as unavailable unless ctx itself was canceled.
func ConnectDB(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", BuildDSN(cfg.DBConfig))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "open database")
	}

	// One sequential reader: a single session holds the cursor.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", connectError(pingErr))
	}

	if cfg.Logger != nil {
		host := cfg.DBConfig.Host
		if host == "" {
			host = "default socket"
		}
		cfg.Logger.InfoContext(ctx, "database connected",
			"host", host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
			"user", cfg.DBConfig.User,
		)
	}

	return db, nil
}

func connectError(err error) error {
	mapped := apperrors.MapDBError(err)
	switch apperrors.GetCode(mapped) {
	case apperrors.ErrCodeUnavailable, apperrors.ErrCodeCanceled:
		return mapped
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "database is unreachable")
	}
}
