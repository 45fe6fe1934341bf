package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rogerio-castellano/product-report/internal/config"
	"github.com/rogerio-castellano/product-report/internal/db"
	"github.com/rogerio-castellano/product-report/internal/redissvc"
	"github.com/rogerio-castellano/product-report/internal/repo"
)

// Store is the product repository chosen by configuration, with whatever
// connections it holds.
type Store struct {
	Products repo.ProductRepository
	closers  []func() error
}

// Open connects the configured backend, creates the schema, wraps the
// repository with the Redis cache when configured, and seeds it on request.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	s := &Store{}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		s.Products = repo.NewInMemoryProductRepository()
	case config.DriverPostgres, config.DriverSQLite:
		database, err := db.Connect(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, database.Close)

		if err := db.EnsureSchema(ctx, database, cfg.Store.Driver); err != nil {
			s.Close()
			return nil, err
		}

		products, err := repo.NewSQLProductRepository(database, cfg.Store.Driver, cfg.Store.QueryTimeout)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Products = products
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	logger.Info("Product store ready", slog.String("driver", cfg.Store.Driver))

	if cfg.Cache.Addr != "" {
		rs, err := redissvc.Connect(ctx, cfg.Cache.Addr)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, rs.Close)
		s.Products = repo.NewCachedProductRepository(s.Products, rs.Rdb(), cfg.Cache.TTL, logger)
		logger.Info("Product cache enabled", slog.String("redis_addr", cfg.Cache.Addr), slog.Duration("ttl", cfg.Cache.TTL))
	}

	if cfg.Store.Seed {
		n, err := repo.Seed(ctx, s.Products)
		if err != nil {
			s.Close()
			return nil, err
		}
		logger.Info("Seeded products", slog.Int("count", n))
	}

	return s, nil
}

// Close releases connections in reverse order of acquisition.
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
