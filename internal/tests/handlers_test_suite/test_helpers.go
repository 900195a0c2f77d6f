package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	handler "github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/router"
	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

const (
	demoEmail    = "demo@warehouse.com"
	demoPassword = "demo"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	handler     http.Handler
	productRepo *repo.InMemoryProductRepository
	adjustments *repo.InMemoryAdjustmentRepository
	token       string
}

// newTestAPI builds a router over freshly seeded in-memory repositories and
// logs in the demo operator.
func newTestAPI() (*testAPI, error) {
	ctx := context.Background()

	adjustments := repo.NewInMemoryAdjustmentRepository()
	productRepo := repo.NewInMemoryProductRepository(adjustments)
	if _, err := repo.SeedProducts(ctx, productRepo, repo.MockProducts()); err != nil {
		return nil, err
	}

	userRepo := repo.NewInMemoryUserRepository()
	if err := repo.SeedUsers(ctx, userRepo, fixedNow); err != nil {
		return nil, err
	}

	committer := inventory.NewCommitter(productRepo, inventory.WithIdentity(auth.ActorFromContext))
	srv := &handler.Server{
		Inventory:   inventory.NewService(productRepo, committer),
		Adjustments: adjustments,
		Metrics:     repo.NewInMemoryMetricsRepository(productRepo, adjustments),
		Auth:        auth.NewAuthService(userRepo, auth.NewIssuer("test-secret", time.Hour), auth.NewMemoryRevocationStore()),
		Now:         func() time.Time { return fixedNow },
	}

	api := &testAPI{
		handler:     router.NewRouter(srv, router.Config{}),
		productRepo: productRepo,
		adjustments: adjustments,
	}

	token, err := api.login(demoEmail, demoPassword)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	api.token = token
	return api, nil
}

func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testAPI) get(path string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, nil, "")
}

func (a *testAPI) login(email, password string) (string, error) {
	w := a.do(http.MethodPost, "/api/auth/login", handler.LoginRequest{Email: email, Password: password}, "")
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login returned %d: %s", w.Code, w.Body.String())
	}

	var resp handler.LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Data.Token, nil
}

func (a *testAPI) adjust(productID string, form models.AdjustmentForm) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, "/api/products/"+productID+"/adjustments", form, a.token)
}

func form(newStock int, t models.AdjustmentType, r models.Reason) models.AdjustmentForm {
	return models.AdjustmentForm{NewStock: newStock, AdjustmentType: t, Reason: r}
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}
