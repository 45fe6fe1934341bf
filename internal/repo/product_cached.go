package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/product-report/internal/models"
)

// CachedProductRepository keeps FindByID results in Redis. Every other
// operation goes straight to the wrapped repository.
type CachedProductRepository struct {
	ProductRepository

	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedProductRepository(next ProductRepository, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedProductRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProductRepository{
		ProductRepository: next,
		rdb:               rdb,
		ttl:               ttl,
		logger:            logger,
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// FindByID serves from the cache when possible. Cache failures fall back to
// the wrapped repository; absent products are never cached.
func (c *CachedProductRepository) FindByID(ctx context.Context, id int64) (models.Product, error) {
	key := productCacheKey(id)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p models.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return p, nil
		}
		c.logger.WarnContext(ctx, "Discarding unreadable cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	p, err := c.ProductRepository.FindByID(ctx, id)
	if err != nil {
		return p, err
	}

	data, err = json.Marshal(p)
	if err != nil {
		return p, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Product cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return p, nil
}
