package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/product-report/internal/db"
	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const productColumns = `id, name, price, quantity`

// productQueries holds the statements of one SQL dialect.
type productQueries struct {
	insert       string
	findAll      string
	findByID     string
	nameContains string
	search       string
	byPrice      string

	// containsArg and searchArg turn user input into the bound match argument.
	containsArg func(fragment string) string
	searchArg   func(pattern string) string
}

func queriesFor(driver string) (productQueries, error) {
	switch driver {
	case db.DriverPostgres:
		return productQueries{
			insert:       `INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3) RETURNING id`,
			findAll:      `SELECT ` + productColumns + ` FROM products ORDER BY id`,
			findByID:     `SELECT ` + productColumns + ` FROM products WHERE id = $1`,
			nameContains: `SELECT ` + productColumns + ` FROM products WHERE name LIKE $1 ORDER BY id`,
			search:       `SELECT ` + productColumns + ` FROM products WHERE name LIKE $1 ORDER BY id`,
			byPrice:      `SELECT ` + productColumns + ` FROM products WHERE price = $1 ORDER BY id`,
			containsArg:  func(fragment string) string { return "%" + escapeLike(fragment) + "%" },
			searchArg:    closeTrailingEscape,
		}, nil
	case db.DriverSQLite:
		// SQLite's LIKE ignores ASCII case, GLOB does not.
		return productQueries{
			insert:       `INSERT INTO products (name, price, quantity) VALUES (?, ?, ?) RETURNING id`,
			findAll:      `SELECT ` + productColumns + ` FROM products ORDER BY id`,
			findByID:     `SELECT ` + productColumns + ` FROM products WHERE id = ?`,
			nameContains: `SELECT ` + productColumns + ` FROM products WHERE name GLOB ? ORDER BY id`,
			search:       `SELECT ` + productColumns + ` FROM products WHERE name GLOB ? ORDER BY id`,
			byPrice:      `SELECT ` + productColumns + ` FROM products WHERE price = ? ORDER BY id`,
			containsArg:  func(fragment string) string { return "*" + escapeGlob(fragment) + "*" },
			searchArg:    likeToGlob,
		}, nil
	}
	return productQueries{}, fmt.Errorf("unsupported store driver %q", driver)
}

// SQLProductRepository is a ProductRepository over PostgreSQL or SQLite.
type SQLProductRepository struct {
	db      *sql.DB
	q       productQueries
	timeout time.Duration
	tracer  trace.Tracer
}

func NewSQLProductRepository(database *sql.DB, driver string, timeout time.Duration) (*SQLProductRepository, error) {
	q, err := queriesFor(driver)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &SQLProductRepository{
		db:      database,
		q:       q,
		timeout: timeout,
		tracer:  otel.Tracer("github.com/rogerio-castellano/product-report/internal/repo"),
	}, nil
}

func (r *SQLProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, span := r.startSpan(ctx, "Create")
	defer span.End()
	span.SetAttributes(attribute.String("product.name", p.Name))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, r.q.insert, p.Name, p.Price, p.Quantity).Scan(&p.ID)
	if err != nil {
		recordError(span, err)
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *SQLProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, "FindAll", r.q.findAll)
}

func (r *SQLProductRepository) FindByID(ctx context.Context, id int64) (models.Product, error) {
	ctx, span := r.startSpan(ctx, "FindByID")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, r.q.findByID, id).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttributes(attribute.Bool("product.found", false))
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		recordError(span, err)
		return models.Product{}, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return p, nil
}

func (r *SQLProductRepository) FindByNameContains(ctx context.Context, fragment string) ([]models.Product, error) {
	return r.list(ctx, "FindByNameContains", r.q.nameContains, r.q.containsArg(fragment))
}

func (r *SQLProductRepository) Search(ctx context.Context, pattern string) ([]models.Product, error) {
	return r.list(ctx, "Search", r.q.search, r.q.searchArg(pattern))
}

func (r *SQLProductRepository) SearchByPrice(ctx context.Context, price decimal.Decimal) ([]models.Product, error) {
	return r.list(ctx, "SearchByPrice", r.q.byPrice, price)
}

func (r *SQLProductRepository) list(ctx context.Context, op, query string, args ...any) ([]models.Product, error) {
	ctx, span := r.startSpan(ctx, op)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
			recordError(span, err)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

func (r *SQLProductRepository) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "ProductRepository."+op, trace.WithSpanKind(trace.SpanKindClient))
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
