package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/isre1late/json-samples/config"
	"github.com/isre1late/json-samples/internal/core"
	"github.com/isre1late/json-samples/internal/domain/model"
	"github.com/isre1late/json-samples/internal/domain/sample"
	apperrors "github.com/isre1late/json-samples/internal/errors"
	"github.com/isre1late/json-samples/internal/observability/metrics"
	"github.com/isre1late/json-samples/internal/observability/statsd"
)

// ExportServiceOptions groups dependencies for ExportService.
type ExportServiceOptions struct {
	Repo    core.FetchedJSONRepository // Required: source of stored responses
	Store   core.SampleStore           // Required: destination for sample files
	Config  config.ExportConfig        // Required: naming and streaming settings
	Logger  *slog.Logger               // Optional: structured logger
	Metrics statsd.Sink                // Optional: metrics sink (StatsD-compatible)
}

// ExportService dumps stored JSON responses into a directory of sample files,
// one file per row, named after the row's URL and fetch time.
type ExportService struct {
	repo    core.FetchedJSONRepository
	store   core.SampleStore
	config  config.ExportConfig
	logger  *slog.Logger
	metrics statsd.Sink
	now     func() time.Time
}

// NewExportService constructs a new ExportService.
func NewExportService(opts ExportServiceOptions) (*ExportService, error) {
	if opts.Repo == nil {
		return nil, errors.New("FetchedJSONRepository is required")
	}
	if opts.Store == nil {
		return nil, errors.New("SampleStore is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ExportService{
		repo:    opts.Repo,
		store:   opts.Store,
		config:  opts.Config,
		logger:  logger.With("component", "export_service"),
		metrics: opts.Metrics,
		now:     time.Now,
	}, nil
}

// Run performs one sequential export pass. Rows are written in cursor order and
// a later row whose name collides with an earlier one replaces it. The first
// failure aborts the run; files written before it are left in place. The
// returned result is populated on failure too.
func (s *ExportService) Run(ctx context.Context) (*model.ExportResult, error) {
	start := s.now()
	result := &model.ExportResult{RunID: uuid.NewString()}
	logger := s.logger.With("run_id", result.RunID)

	logger.InfoContext(ctx, "export started",
		"limit", s.config.Limit,
		"fetch_size", s.config.FetchSize,
		"cursor", s.config.CursorName,
		"suffix", s.config.FileSuffix,
	)

	err := s.export(ctx, logger, result)
	result.Duration = s.now().Sub(start)
	s.record(ctx, logger, result, err)

	if err != nil {
		return result, fmt.Errorf("export: %w", err)
	}
	return result, nil
}

func (s *ExportService) export(ctx context.Context, logger *slog.Logger, result *model.ExportResult) error {
	if err := s.store.Prepare(ctx); err != nil {
		return err
	}

	seen := make(map[string]struct{})
	opts := core.StreamOptions{
		CursorName: s.config.CursorName,
		Limit:      s.config.Limit,
		FetchSize:  s.config.FetchSize,
	}

	return s.repo.Stream(ctx, opts, func(row *model.FetchedJSON) error {
		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "export interrupted")
		}
		if err := s.writeRow(ctx, logger, row, seen, result); err != nil {
			return fmt.Errorf("row %d: %w", result.Rows+1, err)
		}
		if every := s.config.ProgressEvery; every > 0 && result.Rows%every == 0 {
			logger.InfoContext(ctx, "export progress",
				"rows", result.Rows,
				"bytes", result.Bytes,
				"overwrites", result.Overwrites,
			)
		}
		return nil
	})
}

func (s *ExportService) writeRow(
	ctx context.Context,
	logger *slog.Logger,
	row *model.FetchedJSON,
	seen map[string]struct{},
	result *model.ExportResult,
) error {
	name, err := sample.FileName(row.URL, row.FetchedAtString(), s.config.FileSuffix)
	if err != nil {
		return err
	}

	existed, err := s.store.Write(ctx, name, row.Body)
	if err != nil {
		return err
	}

	result.Rows++
	result.Bytes += int64(len(row.Body))
	if _, dup := seen[name]; dup {
		result.Overwrites++
		logger.DebugContext(ctx, "sample overwritten within run", "file", name, "url", row.URL)
	} else {
		seen[name] = struct{}{}
		if existed {
			logger.DebugContext(ctx, "replaced sample from earlier run", "file", name)
		}
	}
	return nil
}

func (s *ExportService) record(ctx context.Context, logger *slog.Logger, result *model.ExportResult, err error) {
	outcome := metrics.ResultSuccess
	switch {
	case err == nil:
	case apperrors.IsCanceled(err):
		outcome = metrics.ResultCanceled
	default:
		outcome = metrics.ResultError
	}

	metrics.EmitExportRun(s.metrics, metrics.ExportRunMetric{
		Result:     outcome,
		Rows:       result.Rows,
		Bytes:      result.Bytes,
		Overwrites: result.Overwrites,
		Duration:   result.Duration,
		Err:        err,
	})

	attrs := []any{
		"result", outcome,
		"rows", result.Rows,
		"bytes", result.Bytes,
		"overwrites", result.Overwrites,
		"duration", result.Duration,
	}
	if err != nil {
		attrs = append(attrs, "error", err, "error_code", apperrors.GetCode(err))
		logger.WarnContext(ctx, "export aborted", attrs...)
		return
	}
	logger.InfoContext(ctx, "export finished", attrs...)
}
