package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/client"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/router"
	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

func newApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	adjustments := repo.NewInMemoryAdjustmentRepository()
	products := repo.NewInMemoryProductRepository(adjustments)
	if _, err := repo.SeedProducts(ctx, products, repo.MockProducts()); err != nil {
		t.Fatal(err)
	}
	users := repo.NewInMemoryUserRepository()
	if err := repo.SeedUsers(ctx, users, time.Now()); err != nil {
		t.Fatal(err)
	}

	srv := &handlers.Server{
		Inventory:   inventory.NewService(products, inventory.NewCommitter(products, inventory.WithIdentity(auth.ActorFromContext))),
		Adjustments: adjustments,
		Metrics:     repo.NewInMemoryMetricsRepository(products, adjustments),
		Auth:        auth.NewAuthService(users, auth.NewIssuer("cli-secret", time.Hour), auth.NewMemoryRevocationStore()),
	}
	ts := httptest.NewServer(router.NewRouter(srv, router.Config{}))
	t.Cleanup(ts.Close)

	out := &bytes.Buffer{}
	return &app{out: out, c: client.New(ts.URL), minStock: -1, maxStock: -1, limit: 20}, out
}

func TestSearchCommand(t *testing.T) {
	a, out := newApp(t)
	a.category = "electronics"

	if err := a.run(t.Context(), []string{"search"}); err != nil {
		t.Fatal(err)
	}
	for _, sku := range []string{"ELEC-001", "ELEC-002", "ELEC-003"} {
		if !strings.Contains(out.String(), sku) {
			t.Errorf("expected %s in output:\n%s", sku, out)
		}
	}
	if !strings.Contains(out.String(), "3 products, 1 low stock, 0 out of stock, 1 critical") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestAdjustCommand(t *testing.T) {
	a, out := newApp(t)
	a.email, a.password = "demo@warehouse.com", "demo"
	a.stock, a.stockSet = 3, true
	a.adjType, a.reason = "decrease", "damaged"

	if err := a.run(t.Context(), []string{"adjust", "TOOL-001"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "TOOL-001: 45 -> 3 (-42) Stock Decrease, Damaged") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out.String(), "warning: TOOL-001 is at or below its minimum stock (10)") {
		t.Errorf("expected critical stock warning:\n%s", out)
	}

	out.Reset()
	if err := a.run(t.Context(), []string{"history", "5"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "showing 1 of 1 adjustments for TOOL-001") {
		t.Errorf("unexpected history output:\n%s", out)
	}
}

func TestAdjustCommand_Invalid(t *testing.T) {
	a, _ := newApp(t)
	a.email, a.password = "demo@warehouse.com", "demo"
	a.stock, a.stockSet = 500, true
	a.adjType, a.reason = "increase", "sold"

	err := a.run(t.Context(), []string{"adjust", "5"})
	if err == nil || !strings.Contains(err.Error(), "Cannot exceed max stock (100)") {
		t.Errorf("expected max stock error, got %v", err)
	}

	a.stockSet = false
	if err := a.run(t.Context(), []string{"adjust", "5"}); err == nil {
		t.Error("expected missing --stock error")
	}
}

func TestUnknownCommand(t *testing.T) {
	a, _ := newApp(t)
	if err := a.run(t.Context(), []string{"explode"}); err == nil {
		t.Error("expected error for unknown command")
	}
	if err := a.run(t.Context(), nil); err == nil {
		t.Error("expected error for missing command")
	}
}
