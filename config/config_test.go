package config

import (
	"log/slog"
	"os"
	"testing"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE",
		"EXPORT_OUTPUT_DIR", "EXPORT_FILE_SUFFIX", "EXPORT_LIMIT", "EXPORT_FETCH_SIZE",
		"EXPORT_CURSOR_NAME", "EXPORT_PROGRESS_EVERY", "LOG_LEVEL",
		"OBSERVABILITY_METRICS_ENABLED",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
	t.Setenv("USER", "tester")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.Postgres.Host != "" {
		t.Errorf("expected host to stay unset for the driver default, got %q", cfg.Postgres.Host)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("expected default port 5432, got %d", cfg.Postgres.Port)
	}
	if cfg.Postgres.SSLMode != "prefer" {
		t.Errorf("expected default sslmode prefer, got %q", cfg.Postgres.SSLMode)
	}
	if cfg.Postgres.User == "" {
		t.Error("expected user to fall back to the OS user")
	}
	if cfg.Postgres.Name != cfg.Postgres.User {
		t.Errorf("expected database to default to user %q, got %q", cfg.Postgres.User, cfg.Postgres.Name)
	}
	if cfg.Export.OutputDir != "data" {
		t.Errorf("expected output dir data, got %q", cfg.Export.OutputDir)
	}
	if cfg.Export.FileSuffix != ".py" {
		t.Errorf("expected suffix .py, got %q", cfg.Export.FileSuffix)
	}
	if cfg.Export.Limit != DefaultExportLimit {
		t.Errorf("expected limit %d, got %d", DefaultExportLimit, cfg.Export.Limit)
	}
	if cfg.Export.FetchSize != DefaultFetchSize {
		t.Errorf("expected fetch size %d, got %d", DefaultFetchSize, cfg.Export.FetchSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestAppConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGUSER", "crawler")
	t.Setenv("PGPASSWORD", "s3cret")
	t.Setenv("PGDATABASE", "isre1late")
	t.Setenv("PGSSLMODE", "require")
	t.Setenv("EXPORT_OUTPUT_DIR", "/tmp/samples")
	t.Setenv("EXPORT_LIMIT", "25")
	t.Setenv("EXPORT_FETCH_SIZE", "5")
	t.Setenv("EXPORT_CURSOR_NAME", "dump_cursor")
	t.Setenv("LOG_LEVEL", "DEBUG")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	want := DBConfig{
		Host:     "db.internal",
		Port:     6543,
		User:     "crawler",
		Password: "s3cret",
		Name:     "isre1late",
		SSLMode:  "require",
	}
	if cfg.Postgres != want {
		t.Errorf("postgres config = %+v, want %+v", cfg.Postgres, want)
	}
	if cfg.Export.OutputDir != "/tmp/samples" || cfg.Export.Limit != 25 || cfg.Export.FetchSize != 5 {
		t.Errorf("unexpected export config: %+v", cfg.Export)
	}
	if cfg.Export.CursorName != "dump_cursor" {
		t.Errorf("expected cursor name dump_cursor, got %q", cfg.Export.CursorName)
	}
	if cfg.Observability.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Observability.SlogLevel())
	}
}

func TestDBConfig_Sanitize(t *testing.T) {
	cfg := DBConfig{Host: "  ", Port: 70000, User: "u", SSLMode: " "}
	cfg.Sanitize()

	if cfg.Host != "" {
		t.Errorf("expected blank host to stay unset, got %q", cfg.Host)
	}
	if cfg.Port != 5432 {
		t.Errorf("expected out of range port to fall back to 5432, got %d", cfg.Port)
	}
	if cfg.SSLMode != "prefer" {
		t.Errorf("expected blank sslmode to fall back to prefer, got %q", cfg.SSLMode)
	}
	if cfg.Name != "u" {
		t.Errorf("expected database name to default to user, got %q", cfg.Name)
	}
}

func TestDBConfig_SanitizeKeepsSocketDirectory(t *testing.T) {
	cfg := DBConfig{Host: " /var/run/postgresql ", Port: 5432, User: "u"}
	cfg.Sanitize()

	if cfg.Host != "/var/run/postgresql" {
		t.Errorf("expected socket directory to be kept, got %q", cfg.Host)
	}
}

func TestExportConfig_Sanitize(t *testing.T) {
	cfg := ExportConfig{OutputDir: " ", Limit: -1, FetchSize: 0, ProgressEvery: -5, CursorName: " c1 "}
	cfg.Sanitize()

	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("expected output dir %q, got %q", DefaultOutputDir, cfg.OutputDir)
	}
	if cfg.Limit != DefaultExportLimit {
		t.Errorf("expected limit %d, got %d", DefaultExportLimit, cfg.Limit)
	}
	if cfg.FetchSize != DefaultFetchSize {
		t.Errorf("expected fetch size %d, got %d", DefaultFetchSize, cfg.FetchSize)
	}
	if cfg.ProgressEvery != 0 {
		t.Errorf("expected negative progress interval to clamp to 0, got %d", cfg.ProgressEvery)
	}
	if cfg.CursorName != "c1" {
		t.Errorf("expected cursor name to be trimmed, got %q", cfg.CursorName)
	}
}

func TestExportConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ExportConfig
		wantErr bool
	}{
		{name: "defaults", cfg: ExportConfig{CursorName: "fetched_json_export", FileSuffix: ".py"}},
		{name: "empty suffix", cfg: ExportConfig{CursorName: "c", FileSuffix: ""}},
		{name: "json suffix", cfg: ExportConfig{CursorName: "c", FileSuffix: ".json"}},
		{name: "empty cursor", cfg: ExportConfig{CursorName: "", FileSuffix: ".py"}, wantErr: true},
		{name: "cursor with quote", cfg: ExportConfig{CursorName: `c"; DROP`, FileSuffix: ".py"}, wantErr: true},
		{name: "cursor starting with digit", cfg: ExportConfig{CursorName: "1c", FileSuffix: ".py"}, wantErr: true},
		{name: "suffix with slash", cfg: ExportConfig{CursorName: "c", FileSuffix: "/../x"}, wantErr: true},
		{name: "suffix with backslash", cfg: ExportConfig{CursorName: "c", FileSuffix: `\x`}, wantErr: true},
		{name: "limit at maximum", cfg: ExportConfig{CursorName: "c", Limit: MaxExportLimit}},
		{name: "limit above maximum", cfg: ExportConfig{CursorName: "c", Limit: 50000}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}
	if cfg.Prefix != "json_samples" {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}

func TestObservabilityConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" Info ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, want := range tests {
		cfg := ObservabilityConfig{LogLevel: input}
		cfg.Sanitize()
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
