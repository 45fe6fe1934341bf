// Command api serves the product queries over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/product-report/internal/config"
	api "github.com/rogerio-castellano/product-report/internal/http"
	"github.com/rogerio-castellano/product-report/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-report/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-report/internal/store"
	"github.com/rogerio-castellano/product-report/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// @title Product Report API
// @version 1.0
// @description Read-only HTTP access to the product queries.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Invalid configuration:", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(os.Stderr, cfg.LogLevel, cfg.OTLP.ServiceName).
		With(slog.String("instance_id", uuid.NewString()))

	if err := serve(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.OTLP)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
		}
	}()

	s, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("could not open product store: %w", err)
	}
	defer s.Close()

	limiter := rl.New(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	go limiter.StartVisitorCleanupLoop(ctx)

	router := api.NewRouter(
		handlers.NewProductHandler(s.Products, logger),
		limiter,
		telemetry.NewHTTPMetrics(),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           otelhttp.NewHandler(router, "product-api"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("✅ Server running", slog.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
