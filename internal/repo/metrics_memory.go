package repo

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type InMemoryMetricsRepository struct {
	productRepo    ProductRepository
	adjustmentRepo AdjustmentRepository
}

func NewInMemoryMetricsRepository(productRepo ProductRepository, adjustmentRepo AdjustmentRepository) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	m := Metrics{}

	products, err := i.productRepo.GetAll(ctx)
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)

	for _, product := range products {
		_, count, err := i.adjustmentRepo.ListByProductID(ctx, product.ID, AdjustmentFilter{})
		if err != nil {
			return m, err
		}
		m.TotalAdjustments += count
		if count > m.MostAdjustedProduct.AdjustmentCount {
			m.MostAdjustedProduct = MostAdjustedProduct{ID: product.ID, Name: product.Name, AdjustmentCount: count}
		}

		switch product.Status {
		case models.StatusLowStock:
			m.LowStockCount++
		case models.StatusOutOfStock:
			m.OutOfStockCount++
		case models.StatusInStock, models.StatusDiscontinued:
		}
		if product.IsCritical() {
			m.CriticalStockCount++
		}
	}

	return m, nil
}
