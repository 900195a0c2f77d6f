package repo

import (
	"context"
	"database/sql"
	"errors"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Metrics

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'low_stock'),
			COUNT(*) FILTER (WHERE status = 'out_of_stock'),
			COUNT(*) FILTER (WHERE current_stock <= min_stock)
		FROM products`).
		Scan(&m.TotalProducts, &m.LowStockCount, &m.OutOfStockCount, &m.CriticalStockCount)
	if err != nil {
		return m, err
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_adjustments`).Scan(&m.TotalAdjustments); err != nil {
		return m, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, COUNT(*) AS cnt
		FROM stock_adjustments a
		JOIN products p ON a.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY cnt DESC, p.id
		LIMIT 1
	`).Scan(&m.MostAdjustedProduct.ID, &m.MostAdjustedProduct.Name, &m.MostAdjustedProduct.AdjustmentCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return m, err
	}

	return m, nil
}
