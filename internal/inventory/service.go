package inventory

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// Service is the in-process DataSource over the catalog repositories.
type Service struct {
	products  repo.ProductRepository
	committer *Committer
}

func NewService(products repo.ProductRepository, committer *Committer) *Service {
	return &Service{products: products, committer: committer}
}

func (s *Service) Search(ctx context.Context, filter repo.ProductFilter) ([]models.Product, error) {
	return s.products.Search(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id string) (models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	return s.products.GetBySKU(ctx, sku)
}

func (s *Service) CommitAdjustment(ctx context.Context, productID string, form models.AdjustmentForm) (models.AdjustmentResult, error) {
	return s.committer.Commit(ctx, productID, form)
}
