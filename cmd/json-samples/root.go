package main

import (
	"context"
	"log/slog"

	"github.com/isre1late/json-samples/config"
	"github.com/isre1late/json-samples/internal/bootstrap"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "json-samples",
		Short: "Export stored JSON responses as sample files",
		Long: `json-samples streams rows of the fetched_json table and writes each body to
<EXPORT_OUTPUT_DIR>/<sha256(url + fetched_at)><EXPORT_FILE_SUFFIX>.

All settings come from the environment (PGHOST, PGPORT, PGUSER, PGPASSWORD,
PGDATABASE, PGSSLMODE and EXPORT_*); a .env file in the working directory is
loaded first when present.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), logger)
		},
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.InitLogger(cfg.Observability.SlogLevel())
	logStartupInfo(ctx, logger, &cfg)

	metricsClient := bootstrap.NewMetricsClient(cfg.Observability.Metrics, logger)
	defer func() {
		if cerr := metricsClient.Close(); cerr != nil {
			logger.WarnContext(ctx, "close statsd client failed", "error", cerr)
		}
	}()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
		DBConfig: cfg.Postgres,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	svc, err := bootstrap.NewExportService(bootstrap.ExportDeps{
		Config:  cfg.Export,
		DB:      db,
		Logger:  logger,
		Metrics: metricsClient,
	})
	if err != nil {
		return err
	}

	_, err = svc.Run(ctx)
	return err
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting json-samples export",
		"version", version,
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"output_dir", cfg.Export.OutputDir,
		"metrics_enabled", cfg.Observability.Metrics.IsEnabled(),
	)
}
