package handlers_test_suite

import (
	"net/http"
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

type metricsResponse struct {
	Success bool         `json:"success"`
	Data    repo.Metrics `json:"data"`
}

func TestDashboardMetricsHandler(t *testing.T) {
	api := mustAPI(t)

	// Mouse twice, drill once
	for _, stock := range []int{70, 60} {
		if w := api.adjust("6", form(stock, models.AdjustmentDecrease, models.ReasonSold)); w.Code != http.StatusCreated {
			t.Fatalf("failed to adjust stock: %d", w.Code)
		}
	}
	if w := api.adjust("5", form(9, models.AdjustmentDecrease, models.ReasonDamaged)); w.Code != http.StatusCreated {
		t.Fatalf("failed to adjust stock: %d", w.Code)
	}

	w := api.get("/api/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	resp, err := decode[metricsResponse](w)
	if err != nil {
		t.Fatalf("failed to decode metrics: %v", err)
	}

	m := resp.Data
	if m.TotalProducts != 6 {
		t.Errorf("expected 6 products, got %d", m.TotalProducts)
	}
	if m.TotalAdjustments != 3 {
		t.Errorf("expected 3 adjustments, got %d", m.TotalAdjustments)
	}
	// ELEC-002 and now TOOL-001 (9 < 10)
	if m.LowStockCount != 2 {
		t.Errorf("expected 2 low stock products, got %d", m.LowStockCount)
	}
	if m.OutOfStockCount != 1 {
		t.Errorf("expected 1 out of stock product, got %d", m.OutOfStockCount)
	}
	if m.MostAdjustedProduct.ID != "6" || m.MostAdjustedProduct.AdjustmentCount != 2 {
		t.Errorf("unexpected most adjusted product: %+v", m.MostAdjustedProduct)
	}
}
