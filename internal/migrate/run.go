// Package migrate applies the embedded fixture schema (the crawler's
// fetched_json table) to test and development databases. The exporter itself
// never changes the schema.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// step is one embedded SQL file.
type step struct {
	version string
	file    string
}

// Versions lists the embedded schema versions in apply order.
func Versions() ([]string, error) {
	steps, err := loadSteps()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.version
	}
	return out, nil
}

// Run applies every embedded step not yet recorded in schema_migrations.
// It is safe to call multiple times.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	steps, err := loadSteps()
	if err != nil {
		return err
	}
	for _, s := range steps {
		if applyErr := apply(ctx, db, s); applyErr != nil {
			return applyErr
		}
	}
	return nil
}

func loadSteps() ([]step, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var steps []step
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		steps = append(steps, step{version: strings.TrimSuffix(e.Name(), ".sql"), file: e.Name()})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].file < steps[j].file })
	return steps, nil
}

func apply(ctx context.Context, db *sql.DB, s step) error {
	var applied bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, s.version,
	).Scan(&applied); err != nil {
		return fmt.Errorf("check migration %s: %w", s.file, err)
	}
	if applied {
		return nil
	}

	body, err := migrationsFS.ReadFile("migrations/" + s.file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", s.file, err)
	}

	logger := slog.Default().With("component", "fixture_schema")
	logger.InfoContext(ctx, "applying migration", "version", s.version)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			logger.ErrorContext(ctx, "failed to rollback migration", "error", rollbackErr, "file", s.file)
		}
	}()

	if _, err = tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("exec migration %s: %w", s.file, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, s.version); err != nil {
		return fmt.Errorf("record migration %s: %w", s.file, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", s.file, err)
	}
	return nil
}
