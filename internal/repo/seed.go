package repo

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/shopspring/decimal"
)

// SampleProducts are inserted by Seed, in this order.
var SampleProducts = []models.Product{
	{Name: "Computer", Price: decimal.NewFromInt(6500), Quantity: 12},
	{Name: "Printer", Price: decimal.NewFromInt(1200), Quantity: 15},
	{Name: "Smartphone", Price: decimal.NewFromInt(1400), Quantity: 20},
}

// Seed inserts SampleProducts when the store is empty and returns how many rows it created.
func Seed(ctx context.Context, r ProductRepository) (int, error) {
	existing, err := r.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing products: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, p := range SampleProducts {
		if _, err := r.Create(ctx, p); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", p.Name, err)
		}
	}
	return len(SampleProducts), nil
}
