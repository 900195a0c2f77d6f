package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

const queryTimeout = 3 * time.Second

const productColumns = `id, sku, name, description, category, current_stock, min_stock, max_stock,
	unit, zone, aisle, rack, shelf, price, status, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.CurrentStock, &p.MinStock, &p.MaxStock,
		&p.Unit, &p.Location.Zone, &p.Location.Aisle, &p.Location.Rack, &p.Location.Shelf,
		&p.Price, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if p.ID == "" {
		if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id::int), 0) + 1 FROM products WHERE id ~ '^[0-9]+$'`).Scan(&p.ID); err != nil {
			return models.Product{}, fmt.Errorf("failed to allocate product id: %w", err)
		}
	}

	_, err := r.db.ExecContext(ctx, query, p.ID, p.SKU, p.Name, p.Description, p.Category, p.CurrentStock, p.MinStock, p.MaxStock,
		p.Unit, p.Location.Zone, p.Location.Aisle, p.Location.Rack, p.Location.Shelf, p.Price, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.Search(ctx, ProductFilter{})
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *PostgresProductRepository) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE lower(sku) = lower($1)`, sku)
}

func (r *PostgresProductRepository) getOne(ctx context.Context, query string, arg any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Search returns the products matching pf ordered by their numeric id, which
// is the seeding order.
func (r *PostgresProductRepository) Search(ctx context.Context, pf ProductFilter) ([]models.Product, error) {
	conditions, args := filterConditions(pf)
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions +
		` ORDER BY length(id), id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func filterConditions(pf ProductFilter) (string, []any) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Query != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+escapeLike(pf.Query)+"%")
		argIdx++
	}
	if pf.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}
	if pf.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, pf.Status)
		argIdx++
	}
	if pf.MinStock != nil {
		query += fmt.Sprintf(" AND current_stock >= $%d", argIdx)
		args = append(args, *pf.MinStock)
		argIdx++
	}
	if pf.MaxStock != nil {
		query += fmt.Sprintf(" AND current_stock <= $%d", argIdx)
		args = append(args, *pf.MaxStock)
	}

	return query, args
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}

// CommitAdjustment updates the product row and inserts the audit record in one
// transaction. The update only applies while current_stock still equals the
// adjustment's previous stock.
func (r *PostgresProductRepository) CommitAdjustment(ctx context.Context, p models.Product, adj models.StockAdjustment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET current_stock = $1, status = $2, updated_at = $3
		WHERE id = $4 AND current_stock = $5`,
		p.CurrentStock, p.Status, p.UpdatedAt, p.ID, adj.PreviousStock)
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	if rowsAffected, _ := res.RowsAffected(); rowsAffected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrStaleProduct
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_adjustments (id, product_id, product_sku, product_name, previous_stock, new_stock,
			adjustment_type, reason, notes, adjusted_by, adjusted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		adj.ID, adj.ProductID, adj.ProductSKU, adj.ProductName, adj.PreviousStock, adj.NewStock,
		adj.AdjustmentType, adj.Reason, adj.Notes, adj.AdjustedBy, adj.AdjustedAt)
	if err != nil {
		return fmt.Errorf("failed to insert adjustment: %w", err)
	}

	return tx.Commit()
}
