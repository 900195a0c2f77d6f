package handlers_integrated_test_suite

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	handler "github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

func mustAPI(t *testing.T) *testAPI {
	t.Helper()
	if databaseURL() == "" {
		t.Skip("DATABASE_URL not set")
	}
	api, err := newTestAPI()
	if err != nil {
		t.Fatalf("failed to build test API: %v", err)
	}
	return api
}

func TestSearchProducts_Postgres(t *testing.T) {
	api := mustAPI(t)

	tests := []struct {
		query    string
		expected []string
	}{
		{"", []string{"ELEC-001", "ELEC-002", "FURN-001", "PACK-001", "TOOL-001", "ELEC-003"}},
		{"?query=ERGONOMIC", []string{"ELEC-001", "ELEC-003"}},
		{"?category=electronics&status=low_stock", []string{"ELEC-002"}},
		{"?minStock=0&maxStock=8", []string{"ELEC-002", "FURN-001"}},
		{"?query=100%25", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := api.do(http.MethodGet, "/api/products"+tt.query, nil, "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}

			var resp handler.ProductsResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if len(resp.Data) != len(tt.expected) {
				t.Fatalf("expected %d products, got %d", len(tt.expected), len(resp.Data))
			}
			for i, p := range resp.Data {
				if p.SKU != tt.expected[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.expected[i], p.SKU)
				}
			}
		})
	}
}

func TestAdjustStock_Postgres(t *testing.T) {
	api := mustAPI(t)

	w := api.adjust("3", models.AdjustmentForm{NewStock: 4, AdjustmentType: models.AdjustmentIncrease, Reason: models.ReasonReceivedShipment, Notes: "first delivery"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	stored, err := api.productRepo.GetByID(t.Context(), "3")
	if err != nil {
		t.Fatal(err)
	}
	if stored.CurrentStock != 4 || stored.Status != models.StatusLowStock {
		t.Errorf("expected 4 low_stock, got %d %s", stored.CurrentStock, stored.Status)
	}

	w = api.do(http.MethodGet, "/api/products/3/adjustments", nil, "")
	var history handler.AdjustmentsResponse
	if err := json.NewDecoder(w.Body).Decode(&history); err != nil {
		t.Fatal(err)
	}
	if history.Meta.TotalCount != 1 || history.Data[0].Notes != "first delivery" || history.Data[0].AdjustedBy != "demo@warehouse.com" {
		t.Errorf("unexpected history: %+v", history)
	}

	w = api.do(http.MethodGet, "/api/dashboard", nil, "")
	var dashboard struct {
		Data repo.Metrics `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&dashboard); err != nil {
		t.Fatal(err)
	}
	if dashboard.Data.TotalAdjustments != 1 || dashboard.Data.OutOfStockCount != 0 || dashboard.Data.MostAdjustedProduct.ID != "3" {
		t.Errorf("unexpected dashboard: %+v", dashboard.Data)
	}
}

func TestConcurrentAdjustments_Postgres(t *testing.T) {
	api := mustAPI(t)

	var wg sync.WaitGroup
	codes := make([]int, 5)
	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := api.adjust("5", models.AdjustmentForm{NewStock: 40 + i, AdjustmentType: models.AdjustmentCorrection, Reason: models.ReasonInventoryCount})
			codes[i] = w.Code
		}()
	}
	wg.Wait()

	created := 0
	for _, c := range codes {
		if c == http.StatusCreated {
			created++
		}
	}

	w := api.do(http.MethodGet, "/api/products/5/adjustments", nil, "")
	var history handler.AdjustmentsResponse
	_ = json.NewDecoder(w.Body).Decode(&history)
	if history.Meta.TotalCount != created {
		t.Fatalf("expected one record per successful commit, got %d records for %d commits", history.Meta.TotalCount, created)
	}

	// Each record starts where the previous one ended.
	for i := 0; i+1 < len(history.Data); i++ {
		if history.Data[i].PreviousStock != history.Data[i+1].NewStock {
			t.Errorf("broken audit chain at %d: %+v", i, history.Data[i:i+2])
		}
	}
}

func TestAuthFlow_Postgres(t *testing.T) {
	api := mustAPI(t)

	w := api.do(http.MethodGet, "/api/auth/me", nil, api.token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	if w := api.do(http.MethodPost, "/api/auth/logout", nil, api.token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if w := api.do(http.MethodGet, "/api/auth/me", nil, api.token); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}
