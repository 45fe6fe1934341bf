package handlers

import (
	"log/slog"

	"github.com/rogerio-castellano/product-report/internal/repo"
)

// ProductHandler serves the product queries over HTTP.
type ProductHandler struct {
	products repo.ProductRepository
	logger   *slog.Logger
}

func NewProductHandler(products repo.ProductRepository, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{products: products, logger: logger}
}
