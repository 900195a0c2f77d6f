package repo

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu          sync.RWMutex
	products    []models.Product
	nextID      int
	adjustments *InMemoryAdjustmentRepository
}

// NewInMemoryProductRepository creates a catalog whose committed adjustments
// are appended to the given audit log.
func NewInMemoryProductRepository(adjustments *InMemoryAdjustmentRepository) *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products:    []models.Product{},
		nextID:      1,
		adjustments: adjustments,
	}
}

// Create adds a new product to the repository. An empty ID is assigned from a sequence.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if strings.EqualFold(p.SKU, product.SKU) || (product.ID != "" && p.ID == product.ID) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	if product.ID == "" {
		product.ID = strconv.Itoa(r.nextID)
	}
	if n, err := strconv.Atoi(product.ID); err == nil && n >= r.nextID {
		r.nextID = n + 1
	}
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Product, len(r.products))
	copy(all, r.products)
	return all, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// GetBySKU retrieves a product by its SKU, ignoring case.
func (r *InMemoryProductRepository) GetBySKU(_ context.Context, sku string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if strings.EqualFold(p.SKU, sku) {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Search returns the products matching pf in catalog order.
func (r *InMemoryProductRepository) Search(_ context.Context, pf ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return FilterProducts(r.products, pf), nil
}

// CommitAdjustment implements ProductRepository.
func (r *InMemoryProductRepository) CommitAdjustment(_ context.Context, product models.Product, adj models.StockAdjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != product.ID {
			continue
		}
		if p.CurrentStock != adj.PreviousStock {
			return ErrStaleProduct
		}
		r.products[i] = product
		r.adjustments.append(adj)
		return nil
	}
	return ErrProductNotFound
}

// Clear drops every product. Used by tests.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = []models.Product{}
	r.nextID = 1
}
