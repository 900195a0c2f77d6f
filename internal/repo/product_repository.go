package repo

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// ProductRepository defines the interface for product catalog operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetBySKU(ctx context.Context, sku string) (models.Product, error)
	Search(ctx context.Context, pf ProductFilter) ([]models.Product, error)

	// CommitAdjustment stores the post-adjustment product and appends the
	// audit record as one unit. It fails with ErrStaleProduct when the stored
	// stock differs from adj.PreviousStock.
	CommitAdjustment(ctx context.Context, product models.Product, adj models.StockAdjustment) error
}
