package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the read operations over the products table,
// plus Create for seeding.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (models.Product, error)
	// FindByNameContains matches fragment literally; an empty fragment matches every row.
	FindByNameContains(ctx context.Context, fragment string) ([]models.Product, error)
	// Search matches names against a LIKE pattern ('%' any run, '_' one character, '\' escapes).
	Search(ctx context.Context, pattern string) ([]models.Product, error)
	SearchByPrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error)
}
