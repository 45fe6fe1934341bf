package handlers

import (
	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	Id       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	return response
}
