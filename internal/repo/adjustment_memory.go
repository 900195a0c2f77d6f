package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type InMemoryAdjustmentRepository struct {
	mu          sync.RWMutex
	adjustments []models.StockAdjustment
}

func NewInMemoryAdjustmentRepository() *InMemoryAdjustmentRepository {
	return &InMemoryAdjustmentRepository{
		adjustments: []models.StockAdjustment{},
	}
}

func (r *InMemoryAdjustmentRepository) append(adj models.StockAdjustment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adjustments = append(r.adjustments, adj)
}

// Count returns the number of recorded adjustments.
func (r *InMemoryAdjustmentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.adjustments), nil
}

// ListByProductID returns all adjustments for a specific product, optionally filtered by date range and paginated
func (r *InMemoryAdjustmentRepository) ListByProductID(_ context.Context, productID string, af AdjustmentFilter) ([]models.StockAdjustment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []models.StockAdjustment
	// newest first
	for i := len(r.adjustments) - 1; i >= 0; i-- {
		a := r.adjustments[i]
		if a.ProductID != productID {
			continue
		}
		if (af.Since != nil && a.AdjustedAt.Before(*af.Since)) ||
			(af.Until != nil && a.AdjustedAt.After(*af.Until)) {
			continue
		}
		filtered = append(filtered, a)
	}

	if af.Offset != nil && *af.Offset > len(filtered) {
		return []models.StockAdjustment{}, len(filtered), nil
	}

	start := 0
	if af.Offset != nil {
		start = clamp(*af.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if af.Limit != nil && *af.Limit > 0 {
		end = clamp(start+*af.Limit, start, len(filtered))
	}

	page := make([]models.StockAdjustment, end-start)
	copy(page, filtered[start:end])
	return page, len(filtered), nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
