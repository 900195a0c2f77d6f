package handlers_test_suite

import (
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
)

func mustAPI(t *testing.T) *testAPI {
	t.Helper()
	api, err := newTestAPI()
	if err != nil {
		t.Fatalf("failed to build test API: %v", err)
	}
	return api
}

func productSKUs(resp handler.ProductsResponse) []string {
	skus := make([]string, 0, len(resp.Data))
	for _, p := range resp.Data {
		skus = append(skus, p.SKU)
	}
	return skus
}

func TestGetProductsHandler_Search(t *testing.T) {
	api := mustAPI(t)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"No filter returns the whole catalog", "", []string{"ELEC-001", "ELEC-002", "FURN-001", "PACK-001", "TOOL-001", "ELEC-003"}},
		{"Text matches name case-insensitively", "?query=KEYBOARD", []string{"ELEC-001"}},
		{"q is an alias of query", "?q=drill", []string{"TOOL-001"}},
		{"Text matches sku", "?query=pack-", []string{"PACK-001"}},
		{"Category filter", "?category=electronics", []string{"ELEC-001", "ELEC-002", "ELEC-003"}},
		{"Status filter", "?status=low_stock", []string{"ELEC-002"}},
		{"Stock range is inclusive", "?minStock=45&maxStock=150", []string{"ELEC-001", "TOOL-001", "ELEC-003"}},
		{"Filters combine", "?category=electronics&maxStock=100", []string{"ELEC-002", "ELEC-003"}},
		{"No match", "?query=nothing-like-this", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.get("/api/products" + tt.query)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}

			resp, err := decode[handler.ProductsResponse](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if !resp.Success {
				t.Error("expected success=true")
			}
			if resp.Meta.TotalCount != len(tt.expected) {
				t.Errorf("expected total_count %d, got %d", len(tt.expected), resp.Meta.TotalCount)
			}

			got := productSKUs(resp)
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGetProductsHandler_InvalidParams(t *testing.T) {
	api := mustAPI(t)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"Non numeric minStock", "?minStock=abc", "minStock"},
		{"Fractional maxStock", "?maxStock=1.5", "maxStock"},
		{"Unknown status", "?status=sold_out", "status"},
		{"Unknown category", "?category=weapons", "category"},
		{"minStock above maxStock", "?minStock=10&maxStock=5", "minStock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.get("/api/products" + tt.query)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 Bad Request, got %d", w.Code)
			}

			resp, err := decode[handler.ErrorResponse](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			found := false
			for _, e := range resp.Errors {
				if strings.EqualFold(e.Field, tt.field) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got %+v", tt.field, resp.Errors)
			}
		})
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	api := mustAPI(t)

	w := api.get("/api/products/2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.ProductResponse](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Data.SKU != "ELEC-002" {
		t.Errorf("expected ELEC-002, got %q", resp.Data.SKU)
	}

	w = api.get("/api/products/999")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
	errResp, _ := decode[handler.ErrorResponse](w)
	if errResp.Success || errResp.Error != "Not Found" || errResp.Message != "product not found" {
		t.Errorf("unexpected error envelope: %+v", errResp)
	}
}

func TestGetProductBySKUHandler(t *testing.T) {
	api := mustAPI(t)

	w := api.get("/api/products/sku/tool-001")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decode[handler.ProductResponse](w)
	if resp.Data.ID != "5" {
		t.Errorf("expected product 5, got %q", resp.Data.ID)
	}

	if w := api.get("/api/products/sku/NOPE-404"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestInventoryProductsAlias(t *testing.T) {
	api := mustAPI(t)

	w := api.get("/api/inventory/products?category=furniture")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decode[handler.ProductsResponse](w)
	if got := productSKUs(resp); len(got) != 1 || got[0] != "FURN-001" {
		t.Errorf("expected [FURN-001], got %v", got)
	}
}

func TestHealthHandler(t *testing.T) {
	api := mustAPI(t)

	w := api.get("/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decode[handler.HealthResult](w)
	if resp.Status != "ok" || resp.Timestamp != "2024-06-01T12:00:00Z" {
		t.Errorf("unexpected health: %+v", resp)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	api := mustAPI(t)
	api.get("/api/products")

	w := api.get("/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "inventory_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}
