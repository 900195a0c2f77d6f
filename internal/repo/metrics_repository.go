package repo

import "context"

type MostAdjustedProduct struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	AdjustmentCount int    `json:"adjustmentCount"`
}

// Metrics is the dashboard summary of the catalog.
type Metrics struct {
	TotalProducts       int                 `json:"totalProducts"`
	TotalAdjustments    int                 `json:"totalAdjustments"`
	LowStockCount       int                 `json:"lowStockCount"`
	OutOfStockCount     int                 `json:"outOfStockCount"`
	CriticalStockCount  int                 `json:"criticalStockCount"`
	MostAdjustedProduct MostAdjustedProduct `json:"mostAdjustedProduct"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}
