package repo

import (
	"context"
	"strings"
	"sync"

	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/shopspring/decimal"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int64
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// FindAll retrieves all products from the repository.
func (r *InMemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	return r.filter(func(models.Product) bool { return true }), nil
}

// FindByID retrieves a product by its ID.
func (r *InMemoryProductRepository) FindByID(_ context.Context, id int64) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) FindByNameContains(_ context.Context, fragment string) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return strings.Contains(p.Name, fragment)
	}), nil
}

func (r *InMemoryProductRepository) Search(_ context.Context, pattern string) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return matchLike(pattern, p.Name)
	}), nil
}

func (r *InMemoryProductRepository) SearchByPrice(_ context.Context, price decimal.Decimal) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return p.Price.Equal(price)
	}), nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = []models.Product{}
	r.nextID = 1
}

func (r *InMemoryProductRepository) filter(keep func(models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
