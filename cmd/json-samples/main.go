// Command json-samples dumps stored JSON responses from the fetched_json table
// into a directory of sample files named after each response's URL and fetch time.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/isre1late/json-samples/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger := bootstrap.InitLogger(slog.LevelInfo)

	err := newRootCmd(logger).ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.ErrorContext(context.Background(), "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}
