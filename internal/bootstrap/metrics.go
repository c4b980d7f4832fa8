package bootstrap

import (
	"log/slog"

	"github.com/isre1late/json-samples/config"
	"github.com/isre1late/json-samples/internal/observability/statsd"
)

// NewMetricsClient returns a StatsD client for cfg. A disabled config, or an
// agent address that cannot be dialed, yields a client that drops metrics:
// metrics never block an export.
func NewMetricsClient(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) *statsd.Client {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled:    cfg.IsEnabled(),
		Address:    cfg.StatsdAddress,
		Prefix:     cfg.Prefix,
		Logger:     logger,
		GlobalTags: map[string]string{"service": "json-samples"},
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		disabled, _ := statsd.NewClient(statsd.Config{Logger: logger})
		return disabled
	}
	return client
}
