package repo_test

import (
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

func intPtr(v int) *int { return &v }

func skus(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.SKU
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterProducts(t *testing.T) {
	catalog := repo.MockProducts()

	tests := []struct {
		name   string
		filter repo.ProductFilter
		want   []string
	}{
		{
			name:   "Empty filter returns whole catalog in order",
			filter: repo.ProductFilter{},
			want:   []string{"ELEC-001", "ELEC-002", "FURN-001", "PACK-001", "TOOL-001", "ELEC-003"},
		},
		{
			name:   "Query matches name case-insensitively",
			filter: repo.ProductFilter{Query: "wireless"},
			want:   []string{"ELEC-001"},
		},
		{
			name:   "Query matches SKU or description",
			filter: repo.ProductFilter{Query: "elec"},
			want:   []string{"ELEC-001", "ELEC-002", "FURN-001", "ELEC-003"},
		},
		{
			name:   "Query matches description",
			filter: repo.ProductFilter{Query: "HDMI"},
			want:   []string{"ELEC-002"},
		},
		{
			name:   "Category",
			filter: repo.ProductFilter{Category: models.CategoryElectronics},
			want:   []string{"ELEC-001", "ELEC-002", "ELEC-003"},
		},
		{
			name:   "Status",
			filter: repo.ProductFilter{Status: models.StatusOutOfStock},
			want:   []string{"FURN-001"},
		},
		{
			name:   "Query and category combine",
			filter: repo.ProductFilter{Query: "ergonomic", Category: models.CategoryElectronics},
			want:   []string{"ELEC-001", "ELEC-003"},
		},
		{
			name:   "Inclusive stock bounds",
			filter: repo.ProductFilter{MinStock: intPtr(8), MaxStock: intPtr(78)},
			want:   []string{"ELEC-002", "TOOL-001", "ELEC-003"},
		},
		{
			name:   "No match",
			filter: repo.ProductFilter{Query: "zzz"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := skus(repo.FilterProducts(catalog, tt.filter))
			if !equalStrings(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterProducts_DoesNotAliasInput(t *testing.T) {
	catalog := repo.MockProducts()

	got := repo.FilterProducts(catalog, repo.ProductFilter{})
	got[0].Name = "changed"

	if catalog[0].Name != "Wireless Keyboard" {
		t.Errorf("expected input to be untouched, got name %q", catalog[0].Name)
	}
}

func TestProductFilter_IsEmpty(t *testing.T) {
	if !(repo.ProductFilter{}).IsEmpty() {
		t.Error("expected zero filter to be empty")
	}
	if (repo.ProductFilter{MaxStock: intPtr(0)}).IsEmpty() {
		t.Error("expected filter with a bound to be non-empty")
	}
}
