package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/isre1late/json-samples/config"
	"github.com/isre1late/json-samples/internal/adapters/samplefs"
	"github.com/isre1late/json-samples/internal/data"
	"github.com/isre1late/json-samples/internal/observability/statsd"
	"github.com/isre1late/json-samples/internal/service"
	"github.com/spf13/afero"
)

var errNilDB = errors.New("database handle is required")

// ExportDeps groups dependencies for building the export service.
type ExportDeps struct {
	Config  config.ExportConfig
	DB      *sql.DB
	Fs      afero.Fs // Optional: defaults to the OS filesystem
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// NewExportService wires the repository and sample store into an ExportService.
func NewExportService(deps ExportDeps) (*service.ExportService, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("build export service: %w", errNilDB)
	}

	svc, err := service.NewExportService(service.ExportServiceOptions{
		Repo:    data.NewFetchedJSONRepo(deps.DB),
		Store:   samplefs.New(samplefs.Options{Fs: deps.Fs, Dir: deps.Config.OutputDir}),
		Config:  deps.Config,
		Logger:  deps.Logger,
		Metrics: deps.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("build export service: %w", err)
	}
	return svc, nil
}
