package repo

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// AdjustmentRepository reads the append-only stock adjustment log. Records
// are written only through ProductRepository.CommitAdjustment.
type AdjustmentRepository interface {
	// ListByProductID returns one page of a product's adjustments, newest
	// first, together with the total number of matching records.
	ListByProductID(ctx context.Context, productID string, af AdjustmentFilter) ([]models.StockAdjustment, int, error)
	Count(ctx context.Context) (int, error)
}
