package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type PostgresAdjustmentRepository struct {
	db *sql.DB
}

func NewPostgresAdjustmentRepository(db *sql.DB) *PostgresAdjustmentRepository {
	return &PostgresAdjustmentRepository{db: db}
}

const defaultLimit = 100

func (r *PostgresAdjustmentRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_adjustments`).Scan(&total)
	return total, err
}

// ListByProductID returns the adjustments of a product, newest first
func (r *PostgresAdjustmentRepository) ListByProductID(ctx context.Context, productID string, af AdjustmentFilter) ([]models.StockAdjustment, int, error) {
	whereClause, args := buildWhereClause(productID, af)

	if af.Offset != nil && *af.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	total, err := r.getTotal(ctx, whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	// Early return if offset is beyond total
	if af.Offset != nil && *af.Offset >= total {
		return []models.StockAdjustment{}, total, nil
	}

	query, queryArgs := buildMainQuery(whereClause, args, af)
	adjustments, err := r.executeQuery(ctx, query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return adjustments, total, nil
}

func buildWhereClause(productID string, af AdjustmentFilter) (string, []any) {
	args := []any{productID}
	whereClause := "WHERE product_id = $1"
	argIndex := 2

	if af.Since != nil {
		whereClause += fmt.Sprintf(" AND adjusted_at >= $%d", argIndex)
		args = append(args, *af.Since)
		argIndex++
	}

	if af.Until != nil {
		whereClause += fmt.Sprintf(" AND adjusted_at <= $%d", argIndex)
		args = append(args, *af.Until)
	}

	return whereClause, args
}

func buildMainQuery(whereClause string, baseArgs []any, af AdjustmentFilter) (string, []any) {
	query := fmt.Sprintf(`SELECT id, product_id, product_sku, product_name, previous_stock, new_stock,
		adjustment_type, reason, notes, adjusted_by, adjusted_at
		FROM stock_adjustments %s ORDER BY adjusted_at DESC, id`, whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	limit := defaultLimit
	if af.Limit != nil && *af.Limit > 0 {
		limit = min(*af.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if af.Offset != nil && *af.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *af.Offset)
	}

	return query, args
}

func (r *PostgresAdjustmentRepository) getTotal(ctx context.Context, whereClause string, args []any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stock_adjustments "+whereClause, args...).Scan(&total)
	return total, err
}

func (r *PostgresAdjustmentRepository) executeQuery(ctx context.Context, query string, args []any) ([]models.StockAdjustment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments := []models.StockAdjustment{}
	for rows.Next() {
		var a models.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductSKU, &a.ProductName, &a.PreviousStock, &a.NewStock,
			&a.AdjustmentType, &a.Reason, &a.Notes, &a.AdjustedBy, &a.AdjustedAt); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return adjustments, nil
}
