package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

const maxCommitAttempts = 3

// Committer applies adjustment forms to the catalog. Commits through one
// Committer are serialized.
type Committer struct {
	mu       sync.Mutex
	products repo.ProductRepository
	now      func() time.Time
	identity IdentityFunc
	newID    func() string
}

type CommitterOption func(*Committer)

func WithClock(now func() time.Time) CommitterOption {
	return func(c *Committer) { c.now = now }
}

func WithIdentity(identity IdentityFunc) CommitterOption {
	return func(c *Committer) { c.identity = identity }
}

func WithIDGenerator(newID func() string) CommitterOption {
	return func(c *Committer) { c.newID = newID }
}

func NewCommitter(products repo.ProductRepository, opts ...CommitterOption) *Committer {
	c := &Committer{
		products: products,
		now:      time.Now,
		identity: FixedIdentity("current-user"),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Commit sets the product's stock to form.NewStock and records the audit
// entry. The form is not validated here. An unknown product yields an error
// wrapping repo.ErrProductNotFound.
func (c *Committer) Commit(ctx context.Context, productID string, form models.AdjustmentForm) (models.AdjustmentResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for attempt := 1; ; attempt++ {
		product, err := c.products.GetByID(ctx, productID)
		if err != nil {
			return models.AdjustmentResult{}, fmt.Errorf("product %s: %w", productID, err)
		}

		result := c.apply(ctx, product, form)
		err = c.products.CommitAdjustment(ctx, result.Product, result.Adjustment)
		if errors.Is(err, repo.ErrStaleProduct) && attempt < maxCommitAttempts {
			logger.Debug(ctx).Str("product_id", productID).Int("attempt", attempt).Msg("stock changed concurrently, retrying")
			continue
		}
		if err != nil {
			return models.AdjustmentResult{}, fmt.Errorf("commit adjustment for product %s: %w", productID, err)
		}

		logCommit(ctx, result)
		return result, nil
	}
}

func (c *Committer) apply(ctx context.Context, product models.Product, form models.AdjustmentForm) models.AdjustmentResult {
	now := c.now()
	adj := models.StockAdjustment{
		ID:             c.newID(),
		ProductID:      product.ID,
		ProductSKU:     product.SKU,
		ProductName:    product.Name,
		PreviousStock:  product.CurrentStock,
		NewStock:       form.NewStock,
		AdjustmentType: form.AdjustmentType,
		Reason:         form.Reason,
		Notes:          form.Notes,
		AdjustedBy:     c.identity(ctx),
		AdjustedAt:     now,
	}

	product.CurrentStock = form.NewStock
	product.Status = models.StockStatus(product.Status, product.CurrentStock, product.MinStock)
	product.UpdatedAt = now

	return models.AdjustmentResult{Adjustment: adj, Product: product}
}

func logCommit(ctx context.Context, result models.AdjustmentResult) {
	adj, p := result.Adjustment, result.Product
	logger.Info(ctx).
		Str("product_id", p.ID).
		Str("sku", p.SKU).
		Int("previous_stock", adj.PreviousStock).
		Int("new_stock", adj.NewStock).
		Str("type", string(adj.AdjustmentType)).
		Str("reason", string(adj.Reason)).
		Str("adjusted_by", adj.AdjustedBy).
		Msg("stock adjusted")

	if p.IsCritical() {
		logger.Warn(ctx).
			Str("sku", p.SKU).
			Int("current_stock", p.CurrentStock).
			Int("min_stock", p.MinStock).
			Str("status", string(p.Status)).
			Msg("stock at or below minimum")
	}
}
