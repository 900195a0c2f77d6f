// Package inventory holds the inventory session state store, the stock
// adjustment validator and the adjustment commit flow.
package inventory

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// ErrNoProductSelected is recorded by Store.AdjustStock when nothing is selected.
var ErrNoProductSelected = errors.New("no product selected")

// DataSource is everything the store needs from the catalog. GetByID reports
// a missing product with repo.ErrProductNotFound; CommitAdjustment does the
// same for an unknown product id.
type DataSource interface {
	Search(ctx context.Context, filter repo.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	CommitAdjustment(ctx context.Context, productID string, form models.AdjustmentForm) (models.AdjustmentResult, error)
}

// IdentityFunc names the actor recorded as AdjustedBy on audit records.
type IdentityFunc func(ctx context.Context) string

// FixedIdentity always reports name.
func FixedIdentity(name string) IdentityFunc {
	return func(context.Context) string { return name }
}
