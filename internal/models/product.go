package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents a product row of the record store.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (p Product) String() string {
	return fmt.Sprintf("Product(id=%d, name=%s, price=%s, quantity=%d)", p.ID, p.Name, p.Price.String(), p.Quantity)
}
