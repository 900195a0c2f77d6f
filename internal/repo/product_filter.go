package repo

import (
	"strings"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// ProductFilter holds the optional search criteria for the catalog.
// Zero values mean "no constraint".
type ProductFilter struct {
	Query    string               `json:"query,omitempty"`
	Category models.Category      `json:"category,omitempty"`
	Status   models.ProductStatus `json:"status,omitempty"`
	MinStock *int                 `json:"minStock,omitempty"`
	MaxStock *int                 `json:"maxStock,omitempty"`
}

// IsEmpty reports whether the filter constrains nothing.
func (pf ProductFilter) IsEmpty() bool {
	return pf.Query == "" && pf.Category == "" && pf.Status == "" && pf.MinStock == nil && pf.MaxStock == nil
}

// MatchesFilter reports whether p satisfies every criterion of pf. The text
// query matches case-insensitively against name, SKU or description.
func MatchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Query != "" {
		q := strings.ToLower(pf.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if pf.Category != "" && p.Category != pf.Category {
		return false
	}
	if pf.Status != "" && p.Status != pf.Status {
		return false
	}
	if pf.MinStock != nil && p.CurrentStock < *pf.MinStock {
		return false
	}
	if pf.MaxStock != nil && p.CurrentStock > *pf.MaxStock {
		return false
	}
	return true
}

// FilterProducts returns, in their original order, the products matching pf.
// The input slice is never modified and the result never aliases it.
func FilterProducts(products []models.Product, pf ProductFilter) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if MatchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
