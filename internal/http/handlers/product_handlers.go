package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/rogerio-castellano/product-report/internal/repo"
	"github.com/shopspring/decimal"
)

// GetProducts godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.FindAll(r.Context())
	h.respondList(w, r, products, err, "could not fetch products")
}

// GetProductByID godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.products.FindByID(r.Context(), id)
	if errors.Is(err, repo.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Product lookup failed", slog.Int64("product_id", id), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}

	_ = writeJSON(w, http.StatusOK, toProductResponse(product))
}

// GetProductsByNameContains godoc
// @Summary Products whose name contains a fragment
// @Description Case-sensitive substring match; an empty fragment returns every product
// @Tags products
// @Produce json
// @Param name query string false "Name fragment"
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/contains [get]
func (h *ProductHandler) GetProductsByNameContains(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.FindByNameContains(r.Context(), r.URL.Query().Get("name"))
	h.respondList(w, r, products, err, "could not search products")
}

// SearchProducts godoc
// @Summary Products whose name matches a wildcard pattern
// @Description '%' matches any run of characters, '_' exactly one
// @Tags products
// @Produce json
// @Param pattern query string true "Wildcard pattern, e.g. %S%"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/search [get]
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	pattern, ok := r.URL.Query()["pattern"]
	if !ok || len(pattern) == 0 {
		writeError(w, http.StatusBadRequest, "missing pattern parameter")
		return
	}

	products, err := h.products.Search(r.Context(), pattern[0])
	h.respondList(w, r, products, err, "could not search products")
}

// SearchProductsByPrice godoc
// @Summary Products with an exact price
// @Tags products
// @Produce json
// @Param price path string true "Price, e.g. 1200 or 1200.00"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/price/{price} [get]
func (h *ProductHandler) SearchProductsByPrice(w http.ResponseWriter, r *http.Request) {
	price, err := decimal.NewFromString(chi.URLParam(r, "price"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	products, err := h.products.SearchByPrice(r.Context(), price)
	h.respondList(w, r, products, err, "could not search products")
}

func (h *ProductHandler) respondList(w http.ResponseWriter, r *http.Request, products []models.Product, err error, failure string) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Product query failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, failure)
		return
	}
	_ = writeJSON(w, http.StatusOK, toProductResponses(products))
}
