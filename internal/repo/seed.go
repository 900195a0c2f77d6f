package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

// MockProducts returns a fresh copy of the demo catalog.
func MockProducts() []models.Product {
	return []models.Product{
		{
			ID: "1", SKU: "ELEC-001", Name: "Wireless Keyboard",
			Description: "Ergonomic wireless keyboard with backlit keys",
			Category:    models.CategoryElectronics,
			CurrentStock: 150, MinStock: 20, MaxStock: 500,
			Unit:      models.UnitPieces,
			Location:  models.Location{Zone: "A", Aisle: "01", Rack: "R1", Shelf: "S3"},
			Price:     49.99,
			Status:    models.StatusInStock,
			CreatedAt: date("2024-01-15"), UpdatedAt: date("2024-06-10"),
		},
		{
			ID: "2", SKU: "ELEC-002", Name: "USB-C Hub 7-in-1",
			Description: "Multi-port USB-C hub with HDMI and card reader",
			Category:    models.CategoryElectronics,
			CurrentStock: 8, MinStock: 15, MaxStock: 200,
			Unit:      models.UnitPieces,
			Location:  models.Location{Zone: "A", Aisle: "01", Rack: "R2", Shelf: "S1"},
			Price:     39.99,
			Status:    models.StatusLowStock,
			CreatedAt: date("2024-02-20"), UpdatedAt: date("2024-06-12"),
		},
		{
			ID: "3", SKU: "FURN-001", Name: "Standing Desk Frame",
			Description: "Electric height-adjustable desk frame",
			Category:    models.CategoryFurniture,
			CurrentStock: 0, MinStock: 5, MaxStock: 50,
			Unit:      models.UnitPieces,
			Location:  models.Location{Zone: "B", Aisle: "03", Rack: "R1", Shelf: "S1"},
			Price:     299.99,
			Status:    models.StatusOutOfStock,
			CreatedAt: date("2024-03-01"), UpdatedAt: date("2024-06-08"),
		},
		{
			ID: "4", SKU: "PACK-001", Name: "Cardboard Boxes (Medium)",
			Description: "12x12x12 inch shipping boxes",
			Category:    models.CategoryPackaging,
			CurrentStock: 2500, MinStock: 500, MaxStock: 5000,
			Unit:      models.UnitPieces,
			Location:  models.Location{Zone: "C", Aisle: "01", Rack: "R1", Shelf: "S1"},
			Price:     1.25,
			Status:    models.StatusInStock,
			CreatedAt: date("2024-01-01"), UpdatedAt: date("2024-06-15"),
		},
		{
			ID: "5", SKU: "TOOL-001", Name: "Cordless Drill Set",
			Description: "20V cordless drill with battery and case",
			Category:    models.CategoryTools,
			CurrentStock: 45, MinStock: 10, MaxStock: 100,
			Unit:      models.UnitPieces,
			Location:  models.Location{Zone: "D", Aisle: "02", Rack: "R3", Shelf: "S2"},
			Price:     129.99,
			Status:    models.StatusInStock,
			CreatedAt: date("2024-04-10"), UpdatedAt: date("2024-06-14"),
		},
		{
			ID: "6", SKU: "ELEC-003", Name: "Bluetooth Mouse",
			Description: "Ergonomic vertical mouse with adjustable DPI",
			Category:    models.CategoryElectronics,
			CurrentStock: 78, MinStock: 25, MaxStock: 300,
			Unit:      models.UnitPieces,
			Location:  models.Location{Zone: "A", Aisle: "01", Rack: "R1", Shelf: "S4"},
			Price:     34.99,
			Status:    models.StatusInStock,
			CreatedAt: date("2024-02-15"), UpdatedAt: date("2024-06-11"),
		},
	}
}

// SeedProducts creates every product that is not yet in the catalog.
// Products whose SKU already exists are left alone, so seeding is idempotent.
func SeedProducts(ctx context.Context, r ProductRepository, products []models.Product) (int, error) {
	created := 0
	for _, p := range products {
		if _, err := r.Create(ctx, p); err != nil {
			if errors.Is(err, ErrDuplicatedValueUnique) {
				continue
			}
			return created, fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
		created++
	}
	return created, nil
}

type seedUser struct {
	email, name, password string
	role                  models.Role
}

var demoUsers = []seedUser{
	{"admin@warehouse.com", "Admin User", "admin123", models.RoleAdmin},
	{"manager@warehouse.com", "Warehouse Manager", "manager123", models.RoleManager},
	{"demo@warehouse.com", "Demo Operator", "demo", models.RoleOperator},
}

// SeedUsers creates the demo accounts that are missing.
func SeedUsers(ctx context.Context, r UserRepository, now time.Time) error {
	for i, su := range demoUsers {
		if _, err := r.GetByEmail(ctx, su.email); err == nil {
			continue
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = r.CreateUser(ctx, models.User{
			ID:           fmt.Sprint(i + 1),
			Email:        su.email,
			Name:         su.name,
			Role:         su.role,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil && !errors.Is(err, ErrDuplicatedValueUnique) {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
	}
	return nil
}
