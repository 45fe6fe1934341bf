package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rogerio-castellano/product-report/internal/config"
	"github.com/rogerio-castellano/product-report/internal/repo"
)

func memoryConfig(seed bool, lookupID int64) *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Driver:       config.DriverMemory,
			QueryTimeout: time.Second,
			Seed:         seed,
		},
		OTLP:     config.OTLPConfig{ServiceName: "product-report-test"},
		LookupID: lookupID,
	}
}

func TestRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := run(context.Background(), memoryConfig(true, 1), logger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_UnseededStoreFails(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := run(context.Background(), memoryConfig(false, 1), logger)
	if !errors.Is(err, repo.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
