package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/isre1late/json-samples/internal/migrate"
	// Import pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// TestDBConfig holds configuration for test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig returns default test database configuration.
// Defaults to port 55432 (local test DB from docker-compose test profile).
// CI/CD environments should set TEST_DB_PORT=5432 explicitly.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "isre1late"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "isre1late"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "isre1late"),
	}
}

// TestingTB is an interface that covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// SkipIfNoTestDB skips the test if test database is not available.
// Set TEST_REQUIRE_DB=1 to turn the skip into a failure.
func SkipIfNoTestDB(t TestingTB) {
	t.Helper()

	db, err := sql.Open("pgx", buildBaseDSN(DefaultTestDBConfig()))
	if err != nil {
		if requireDB() {
			t.Fatal("Test database not available:", err)
		}
		t.Skip("Test database not available:", err)
	}
	defer closeAndLog(t, "availability check DB", db)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if requireDB() {
			t.Fatal("Test database not available:", pingErr)
		}
		t.Skip("Test database not available:", pingErr)
	}
}

// buildBaseDSN constructs a base DSN without search_path.
func buildBaseDSN(cfg TestDBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   "/" + cfg.DBName,
	}
	q := u.Query()
	q.Set("sslmode", getEnvOrDefault("TEST_DB_SSL_MODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

// generateSchemaName creates a lowercase alphanumeric schema name with prefix.
func generateSchemaName() string {
	// 4 random bytes -> 8 hex chars
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// Fallback to time-based suffix if randomness fails
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}

func closeAndLog(t TestingTB, name string, closer interface{ Close() error }) {
	if err := closer.Close(); err != nil {
		t.Logf("warning: failed to close %s: %v", name, err)
	}
}

// SetupEphemeralSchemaDB creates a unique schema per test, sets search_path to it,
// applies the fixture schema, and registers cleanup to drop the schema after the test.
func SetupEphemeralSchemaDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	adminDB := openDB(t, buildBaseDSN(DefaultTestDBConfig()), "admin DB")
	schema := generateSchemaName()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := adminDB.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema); err != nil {
		closeAndLog(t, "admin DB", adminDB)
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}

	db := openDB(t, withSearchPath(t, schema), "schema DB")
	registerSchemaCleanup(t, schemaCleanupResources{adminDB: adminDB, db: db, schema: schema})

	if err := migrate.Run(ctx, db); err != nil {
		t.Fatal("Failed to apply fixture schema:", err)
	}
	return db
}

func withSearchPath(t TestingTB, schema string) string {
	u, err := url.Parse(buildBaseDSN(DefaultTestDBConfig()))
	if err != nil {
		t.Fatal("Failed to parse DSN:", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String()
}

func openDB(t TestingTB, dsn, name string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", name, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		closeAndLog(t, name, db)
		t.Fatalf("Failed to ping %s: %v", name, pingErr)
	}
	return db
}

type schemaCleanupResources struct {
	adminDB *sql.DB
	db      *sql.DB
	schema  string
}

func registerSchemaCleanup(t TestingTB, resources schemaCleanupResources) {
	t.Logf("Using ephemeral schema: %s", resources.schema)
	tCleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		closeAndLog(t, "schema DB", resources.db)
		if _, err := resources.adminDB.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+resources.schema+" CASCADE"); err != nil {
			t.Logf("Warning: failed to drop schema %s: %v", resources.schema, err)
		}
		closeAndLog(t, "admin DB", resources.adminDB)
	}
	if tc, ok := any(t).(interface{ Cleanup(func()) }); ok {
		tc.Cleanup(tCleanup)
	}
}

// FetchedJSONFixture is one row to insert into fetched_json.
type FetchedJSONFixture struct {
	URL       string
	FetchedAt time.Time
	Body      string
}

// SeedFetchedJSON inserts rows in order.
func SeedFetchedJSON(t TestingTB, db *sql.DB, rows ...FetchedJSONFixture) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for i, r := range rows {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO fetched_json (fetched_at, url, body) VALUES ($1, $2, $3)`,
			r.FetchedAt, r.URL, r.Body,
		); err != nil {
			t.Fatalf("Failed to seed fetched_json row %d: %v", i, err)
		}
	}
}

// TestTime returns the fixed timestamp used across fixtures.
func TestTime() time.Time {
	return time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envBool parses common truthy values from env vars.
func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

func requireDB() bool { return envBool("TEST_REQUIRE_DB") || envBool("TEST_REQUIRE_INFRA") }
