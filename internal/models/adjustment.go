package models

import "time"

// StockAdjustment is the immutable audit record of one committed stock change.
type StockAdjustment struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"productId"`
	ProductSKU     string         `json:"productSku"`
	ProductName    string         `json:"productName"`
	PreviousStock  int            `json:"previousStock"`
	NewStock       int            `json:"newStock"`
	AdjustmentType AdjustmentType `json:"adjustmentType"`
	Reason         Reason         `json:"reason"`
	Notes          string         `json:"notes,omitempty"`
	AdjustedBy     string         `json:"adjustedBy"`
	AdjustedAt     time.Time      `json:"adjustedAt"`
}

// Delta is the signed stock change recorded by the adjustment.
func (a StockAdjustment) Delta() int {
	return a.NewStock - a.PreviousStock
}

// AdjustmentForm carries what an operator submits to change a product's stock.
type AdjustmentForm struct {
	NewStock       int            `json:"newStock"`
	AdjustmentType AdjustmentType `json:"adjustmentType"`
	Reason         Reason         `json:"reason"`
	Notes          string         `json:"notes,omitempty"`
}

// NewAdjustmentForm returns a form prefilled with the defaults offered to operators.
func NewAdjustmentForm(newStock int) AdjustmentForm {
	return AdjustmentForm{
		NewStock:       newStock,
		AdjustmentType: AdjustmentCorrection,
		Reason:         ReasonInventoryCount,
	}
}

// AdjustmentResult is what a successful commit hands back: the audit record
// and the product as it stands after the commit.
type AdjustmentResult struct {
	Adjustment StockAdjustment `json:"adjustment"`
	Product    Product         `json:"product"`
}
