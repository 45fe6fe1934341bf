package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/product-report/internal/http"
	"github.com/rogerio-castellano/product-report/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-report/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-report/internal/models"
	"github.com/rogerio-castellano/product-report/internal/repo"
	"github.com/rogerio-castellano/product-report/internal/telemetry"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T, products repo.ProductRepository, rps float64, burst int) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewRouter(
		handlers.NewProductHandler(products, logger),
		rl.New(rps, burst),
		telemetry.NewHTTPMetrics(),
	)
}

func seededRepo(t *testing.T) *repo.InMemoryProductRepository {
	t.Helper()
	r := repo.NewInMemoryProductRepository()
	if _, err := repo.Seed(context.Background(), r); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProducts(t *testing.T, w *httptest.ResponseRecorder) []handlers.ProductResponse {
	t.Helper()
	var resp []handlers.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func names(products []handlers.ProductResponse) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductListEndpoints(t *testing.T) {
	r := newTestRouter(t, seededRepo(t), 1000, 100)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "All products", target: "/products", want: []string{"Computer", "Printer", "Smartphone"}},
		{name: "Name contains C", target: "/products/contains?name=C", want: []string{"Computer"}},
		{name: "Name contains empty", target: "/products/contains", want: []string{"Computer", "Printer", "Smartphone"}},
		{name: "Name contains lowercase", target: "/products/contains?name=c", want: []string{}},
		{name: "Pattern %S%", target: "/products/search?pattern=%25S%25", want: []string{"Smartphone"}},
		{name: "Empty pattern", target: "/products/search?pattern=", want: []string{}},
		{name: "Price 1200", target: "/products/price/1200", want: []string{"Printer"}},
		{name: "Price 1200.00", target: "/products/price/1200.00", want: []string{"Printer"}},
		{name: "Price without match", target: "/products/price/1", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %q", ct)
			}

			got := names(decodeProducts(t, w))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGetProductByID(t *testing.T) {
	r := newTestRouter(t, seededRepo(t), 1000, 100)

	w := get(r, "/products/1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handlers.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Id != 1 || resp.Name != "Computer" || !resp.Price.Equal(decimal.NewFromInt(6500)) || resp.Quantity != 12 {
		t.Errorf("unexpected product %+v", resp)
	}
}

func TestBadRequests(t *testing.T) {
	r := newTestRouter(t, seededRepo(t), 1000, 100)

	tests := []struct {
		name       string
		target     string
		expectCode int
	}{
		{name: "Unknown id", target: "/products/99", expectCode: http.StatusNotFound},
		{name: "Non-numeric id", target: "/products/abc", expectCode: http.StatusBadRequest},
		{name: "Missing pattern", target: "/products/search", expectCode: http.StatusBadRequest},
		{name: "Invalid price", target: "/products/price/cheap", expectCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.target)
			if w.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, w.Code)
			}

			var resp handlers.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

type brokenRepository struct {
	repo.ProductRepository
}

func (brokenRepository) FindAll(context.Context) ([]models.Product, error) {
	return nil, io.ErrUnexpectedEOF
}

func (brokenRepository) FindByID(context.Context, int64) (models.Product, error) {
	return models.Product{}, io.ErrUnexpectedEOF
}

func TestStoreFailure(t *testing.T) {
	r := newTestRouter(t, brokenRepository{}, 1000, 100)

	for _, target := range []string{"/products", "/products/1"} {
		if w := get(r, target); w.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", target, w.Code)
		}
	}
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, seededRepo(t), 0.001, 2)

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, get(r, "/products").Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected [200 200 429], got %v", codes)
	}

	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Errorf("health must not be rate limited, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, seededRepo(t), 1000, 100)
	get(r, "/products/1")
	get(r, "/products/99")

	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		`product_api_requests_total{method="GET",route="/products/{id}",status="200"} 1`,
		`product_api_requests_total{method="GET",route="/products/{id}",status="404"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
