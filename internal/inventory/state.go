package inventory

import (
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// State is a snapshot of an inventory session. Snapshots handed out by the
// Store are deep copies and may be kept or modified freely.
type State struct {
	Products          []models.Product
	ProductsLoading   models.LoadingState
	SelectedProduct   *models.Product
	SelectedLoading   models.LoadingState
	AdjustmentLoading models.LoadingState
	LastAdjustment    *models.StockAdjustment
	SearchQuery       string
	SearchParams      repo.ProductFilter
	// Error is the latest failure message, empty when there is none.
	Error string

	Views Views
	// Version increases with every change of the store.
	Version uint64
}

// Views are the values derived from a State.
type Views struct {
	ProductsCount            int
	LowStockProducts         []models.Product
	OutOfStockProducts       []models.Product
	CriticalStockCount       int
	IsLoadingProducts        bool
	IsLoadingSelectedProduct bool
	IsAdjusting              bool
	HasError                 bool
	CanAdjust                bool
}

func initialState() State {
	s := State{
		Products:          []models.Product{},
		ProductsLoading:   models.LoadingIdle,
		SelectedLoading:   models.LoadingIdle,
		AdjustmentLoading: models.LoadingIdle,
	}
	s.Views = ComputeViews(s)
	return s
}

// ComputeViews derives the views of s. Critical stock counts every product at
// or below its minimum whatever its status.
func ComputeViews(s State) Views {
	v := Views{
		ProductsCount:            len(s.Products),
		LowStockProducts:         []models.Product{},
		OutOfStockProducts:       []models.Product{},
		IsLoadingProducts:        s.ProductsLoading == models.LoadingLoading,
		IsLoadingSelectedProduct: s.SelectedLoading == models.LoadingLoading,
		IsAdjusting:              s.AdjustmentLoading == models.LoadingLoading,
		HasError:                 s.Error != "",
		CanAdjust:                s.SelectedProduct != nil && s.AdjustmentLoading != models.LoadingLoading,
	}

	for _, p := range s.Products {
		switch p.Status {
		case models.StatusLowStock:
			v.LowStockProducts = append(v.LowStockProducts, p)
		case models.StatusOutOfStock:
			v.OutOfStockProducts = append(v.OutOfStockProducts, p)
		case models.StatusInStock, models.StatusDiscontinued:
		}
		if p.IsCritical() {
			v.CriticalStockCount++
		}
	}
	return v
}

func (s State) clone() State {
	c := s
	c.Products = append([]models.Product(nil), s.Products...)
	if c.Products == nil {
		c.Products = []models.Product{}
	}
	if s.SelectedProduct != nil {
		p := *s.SelectedProduct
		c.SelectedProduct = &p
	}
	if s.LastAdjustment != nil {
		a := *s.LastAdjustment
		c.LastAdjustment = &a
	}
	c.SearchParams = cloneFilter(s.SearchParams)
	c.Views.LowStockProducts = append([]models.Product{}, s.Views.LowStockProducts...)
	c.Views.OutOfStockProducts = append([]models.Product{}, s.Views.OutOfStockProducts...)
	return c
}

func cloneFilter(f repo.ProductFilter) repo.ProductFilter {
	if f.MinStock != nil {
		v := *f.MinStock
		f.MinStock = &v
	}
	if f.MaxStock != nil {
		v := *f.MaxStock
		f.MaxStock = &v
	}
	return f
}
