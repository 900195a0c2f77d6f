package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/db"
	handler "github.com/rogerio-castellano/warehouse-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/warehouse-inventory/internal/http/router"
	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

var (
	database   *sql.DB
	connectErr error
	connect    sync.Once
)

type testAPI struct {
	handler     http.Handler
	productRepo *repo.PostgresProductRepository
	token       string
}

// databaseURL is empty when no test database is configured.
func databaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func openDatabase() (*sql.DB, error) {
	connect.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		database, connectErr = db.Connect(ctx, databaseURL())
		if connectErr != nil {
			return
		}
		connectErr = db.Migrate(ctx, database)
	})
	return database, connectErr
}

// newTestAPI empties the database, seeds the mock catalog and users and logs
// in the demo operator.
func newTestAPI() (*testAPI, error) {
	database, err := openDatabase()
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	ctx := context.Background()
	if err := db.Reset(ctx, database); err != nil {
		return nil, err
	}

	productRepo := repo.NewPostgresProductRepository(database)
	adjustments := repo.NewPostgresAdjustmentRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)

	if _, err := repo.SeedProducts(ctx, productRepo, repo.MockProducts()); err != nil {
		return nil, err
	}
	if err := repo.SeedUsers(ctx, userRepo, time.Now()); err != nil {
		return nil, err
	}

	committer := inventory.NewCommitter(productRepo, inventory.WithIdentity(auth.ActorFromContext))
	srv := &handler.Server{
		Inventory:   inventory.NewService(productRepo, committer),
		Adjustments: adjustments,
		Metrics:     repo.NewPostgresMetricsRepository(database),
		Auth:        auth.NewAuthService(userRepo, auth.NewIssuer("integration-secret", time.Hour), auth.NewMemoryRevocationStore()),
	}

	api := &testAPI{handler: router.NewRouter(srv, router.Config{}), productRepo: productRepo}
	api.token, err = api.login("demo@warehouse.com", "demo")
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return api, nil
}

func (a *testAPI) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(email, password string) (string, error) {
	w := a.do(http.MethodPost, "/api/auth/login", handler.LoginRequest{Email: email, Password: password}, "")
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login returned %d", w.Code)
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
