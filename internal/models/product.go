package models

import "time"

// Product represents a product entity in the warehouse catalog.
type Product struct {
	ID           string        `json:"id"`
	SKU          string        `json:"sku"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	CurrentStock int           `json:"currentStock"`
	MinStock     int           `json:"minStock"`
	MaxStock     int           `json:"maxStock"`
	Unit         Unit          `json:"unit"`
	Location     Location      `json:"location"`
	Price        float64       `json:"price"`
	Status       ProductStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Location is the physical slot of a product inside the warehouse.
type Location struct {
	Zone  string `json:"zone"`
	Aisle string `json:"aisle"`
	Rack  string `json:"rack"`
	Shelf string `json:"shelf"`
}

// String formats the location the way labels are printed on the racks.
func (l Location) String() string {
	return "Zone " + l.Zone + ", Aisle " + l.Aisle + ", Rack " + l.Rack + ", Shelf " + l.Shelf
}

// StockStatus derives the availability status for a stock level.
// A discontinued product stays discontinued whatever its stock.
func StockStatus(previous ProductStatus, currentStock, minStock int) ProductStatus {
	if previous == StatusDiscontinued {
		return StatusDiscontinued
	}
	switch {
	case currentStock == 0:
		return StatusOutOfStock
	case currentStock <= minStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// IsCritical reports whether the stock is at or below the configured minimum.
func (p Product) IsCritical() bool {
	return p.CurrentStock <= p.MinStock
}
