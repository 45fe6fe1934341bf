// Package report prints the fixed sequence of product queries run at startup.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/rogerio-castellano/product-report/internal/repo"
	"github.com/shopspring/decimal"
)

const (
	lookupSeparator  = "****************"
	sectionSeparator = "------------------------"
)

// Options selects the arguments of the lookup and the three searches.
type Options struct {
	LookupID     int64
	NameFragment string
	Pattern      string
	Price        decimal.Decimal
}

func DefaultOptions() Options {
	return Options{
		LookupID:     1,
		NameFragment: "C",
		Pattern:      "%S%",
		Price:        decimal.NewFromInt(1200),
	}
}

// printer remembers the first write error so the report reads top to bottom.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) println(v any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, v)
}

func (p *printer) products(products []models.Product) {
	for _, product := range products {
		p.println(product)
	}
}

// Run executes the five queries in order and writes them to w. An absent
// lookup id stops the report with an error wrapping repo.ErrProductNotFound.
func Run(ctx context.Context, w io.Writer, r repo.ProductRepository, opts Options) error {
	p := &printer{w: w}

	all, err := r.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}
	p.products(all)

	product, err := r.FindByID(ctx, opts.LookupID)
	if err != nil {
		return errors.Join(p.err, fmt.Errorf("looking up product %d: %w", opts.LookupID, err))
	}
	p.println(lookupSeparator)
	p.println(product.ID)
	p.println(product.Name)
	p.println(product.Price)
	p.println(product.Quantity)
	p.println(lookupSeparator)

	p.println(sectionSeparator)
	byName, err := r.FindByNameContains(ctx, opts.NameFragment)
	if err != nil {
		return fmt.Errorf("searching names containing %q: %w", opts.NameFragment, err)
	}
	p.products(byName)

	p.println(sectionSeparator)
	byPattern, err := r.Search(ctx, opts.Pattern)
	if err != nil {
		return fmt.Errorf("searching names like %q: %w", opts.Pattern, err)
	}
	p.products(byPattern)

	p.println(sectionSeparator)
	byPrice, err := r.SearchByPrice(ctx, opts.Price)
	if err != nil {
		return fmt.Errorf("searching price %s: %w", opts.Price, err)
	}
	p.products(byPrice)

	return p.err
}
