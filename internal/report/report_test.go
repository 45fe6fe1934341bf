package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/rogerio-castellano/product-report/internal/repo"
	"github.com/shopspring/decimal"
)

const expectedReport = `Product(id=1, name=Computer, price=6500, quantity=12)
Product(id=2, name=Printer, price=1200, quantity=15)
Product(id=3, name=Smartphone, price=1400, quantity=20)
****************
1
Computer
6500
12
****************
------------------------
Product(id=1, name=Computer, price=6500, quantity=12)
------------------------
Product(id=3, name=Smartphone, price=1400, quantity=20)
------------------------
Product(id=2, name=Printer, price=1200, quantity=15)
`

func seededRepo(t *testing.T) *repo.InMemoryProductRepository {
	t.Helper()
	r := repo.NewInMemoryProductRepository()
	if _, err := repo.Seed(context.Background(), r); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return r
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), &out, seededRepo(t), DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != expectedReport {
		t.Errorf("unexpected report:\n%s\nexpected:\n%s", out.String(), expectedReport)
	}
}

func TestRun_NoMatches(t *testing.T) {
	opts := DefaultOptions()
	opts.NameFragment = "Z"
	opts.Pattern = "%z%"
	opts.Price = decimal.NewFromInt(1)

	var out bytes.Buffer
	if err := Run(context.Background(), &out, seededRepo(t), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"Product(id=1, name=Computer, price=6500, quantity=12)",
		"Product(id=2, name=Printer, price=1200, quantity=15)",
		"Product(id=3, name=Smartphone, price=1400, quantity=20)",
		"****************", "1", "Computer", "6500", "12", "****************",
		"------------------------",
		"------------------------",
		"------------------------",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("unexpected report:\n%s", out.String())
	}
}

func TestRun_MissingLookup(t *testing.T) {
	opts := DefaultOptions()
	opts.LookupID = 99

	var out bytes.Buffer
	err := Run(context.Background(), &out, seededRepo(t), opts)
	if !errors.Is(err, repo.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected only the product listing before the failure, got %q", out.String())
	}
	if strings.Contains(out.String(), "****************") {
		t.Error("lookup block must not be printed for an absent product")
	}
}

func TestRun_EmptyStore(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), &out, repo.NewInMemoryProductRepository(), DefaultOptions())
	if !errors.Is(err, repo.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

type failingRepository struct {
	repo.ProductRepository
}

var errStoreDown = errors.New("store unreachable")

func (failingRepository) FindAll(context.Context) ([]models.Product, error) {
	return nil, errStoreDown
}

func TestRun_StoreFailure(t *testing.T) {
	err := Run(context.Background(), &bytes.Buffer{}, failingRepository{}, DefaultOptions())
	if !errors.Is(err, errStoreDown) {
		t.Errorf("expected store error, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRun_WriteFailureThenMissingLookup(t *testing.T) {
	opts := DefaultOptions()
	opts.LookupID = 99

	err := Run(context.Background(), failingWriter{}, seededRepo(t), opts)
	if !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound to survive the write error, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "closed pipe") {
		t.Errorf("expected the write error to be reported too, got %v", err)
	}
}

func TestRun_WriteFailure(t *testing.T) {
	if err := Run(context.Background(), failingWriter{}, seededRepo(t), DefaultOptions()); err == nil {
		t.Error("expected write error")
	}
}
