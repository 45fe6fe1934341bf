// Command runner prints the product report once and exits.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/product-report/internal/config"
	"github.com/rogerio-castellano/product-report/internal/report"
	"github.com/rogerio-castellano/product-report/internal/store"
	"github.com/rogerio-castellano/product-report/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Invalid configuration:", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(os.Stderr, cfg.LogLevel, cfg.OTLP.ServiceName).
		With(slog.String("run_id", uuid.NewString()))

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Product report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tp, err := telemetry.NewTracerProvider(ctx, cfg.OTLP)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Error shutting down tracer provider", slog.String("error", err.Error()))
		}
	}()

	s, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("could not open product store: %w", err)
	}
	defer s.Close()

	opts := report.DefaultOptions()
	opts.LookupID = cfg.LookupID

	return report.Run(ctx, os.Stdout, s.Products, opts)
}
