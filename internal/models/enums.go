package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownValue is returned when a string does not name a member of one of
// the closed enumerations below.
var ErrUnknownValue = errors.New("unknown value")

// Category groups products by kind of goods.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFurniture   Category = "furniture"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryTools       Category = "tools"
	CategoryPackaging   Category = "packaging"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFurniture, CategoryClothing, CategoryFood,
		CategoryTools, CategoryPackaging, CategoryOther:
		return true
	}
	return false
}

// Unit is the measurement unit stock is counted in.
type Unit string

const (
	UnitPieces  Unit = "pieces"
	UnitBoxes   Unit = "boxes"
	UnitPallets Unit = "pallets"
	UnitKg      Unit = "kg"
	UnitLiters  Unit = "liters"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPieces, UnitBoxes, UnitPallets, UnitKg, UnitLiters:
		return true
	}
	return false
}

// ProductStatus is the availability status derived from stock levels.
type ProductStatus string

const (
	StatusInStock      ProductStatus = "in_stock"
	StatusLowStock     ProductStatus = "low_stock"
	StatusOutOfStock   ProductStatus = "out_of_stock"
	StatusDiscontinued ProductStatus = "discontinued"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusDiscontinued:
		return true
	}
	return false
}

// AdjustmentType classifies the direction or nature of a stock change.
type AdjustmentType string

const (
	AdjustmentIncrease    AdjustmentType = "increase"
	AdjustmentDecrease    AdjustmentType = "decrease"
	AdjustmentCorrection  AdjustmentType = "correction"
	AdjustmentTransferIn  AdjustmentType = "transfer_in"
	AdjustmentTransferOut AdjustmentType = "transfer_out"
)

// AdjustmentTypes lists every adjustment type in display order.
var AdjustmentTypes = []AdjustmentType{
	AdjustmentIncrease, AdjustmentDecrease, AdjustmentCorrection, AdjustmentTransferIn, AdjustmentTransferOut,
}

func (t AdjustmentType) Valid() bool {
	return t.Label() != ""
}

// Label is the human readable name of the type, empty for unknown types.
func (t AdjustmentType) Label() string {
	switch t {
	case AdjustmentIncrease:
		return "Stock Increase"
	case AdjustmentDecrease:
		return "Stock Decrease"
	case AdjustmentCorrection:
		return "Inventory Correction"
	case AdjustmentTransferIn:
		return "Transfer In"
	case AdjustmentTransferOut:
		return "Transfer Out"
	}
	return ""
}

// Reason explains why a stock change happened.
type Reason string

const (
	ReasonReceivedShipment Reason = "received_shipment"
	ReasonSold             Reason = "sold"
	ReasonDamaged          Reason = "damaged"
	ReasonLost             Reason = "lost"
	ReasonReturned         Reason = "returned"
	ReasonInventoryCount   Reason = "inventory_count"
	ReasonTransfer         Reason = "transfer"
	ReasonOther            Reason = "other"
)

// Reasons lists every adjustment reason in display order.
var Reasons = []Reason{
	ReasonReceivedShipment, ReasonSold, ReasonDamaged, ReasonLost,
	ReasonReturned, ReasonInventoryCount, ReasonTransfer, ReasonOther,
}

func (r Reason) Valid() bool {
	return r.Label() != ""
}

// Label is the human readable name of the reason, empty for unknown reasons.
func (r Reason) Label() string {
	switch r {
	case ReasonReceivedShipment:
		return "Received Shipment"
	case ReasonSold:
		return "Sold"
	case ReasonDamaged:
		return "Damaged"
	case ReasonLost:
		return "Lost"
	case ReasonReturned:
		return "Returned"
	case ReasonInventoryCount:
		return "Inventory Count"
	case ReasonTransfer:
		return "Warehouse Transfer"
	case ReasonOther:
		return "Other"
	}
	return ""
}

// LoadingState describes the lifecycle of one kind of asynchronous operation.
type LoadingState string

const (
	LoadingIdle    LoadingState = "idle"
	LoadingLoading LoadingState = "loading"
	LoadingSuccess LoadingState = "success"
	LoadingError   LoadingState = "error"
)

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("category %q: %w", s, ErrUnknownValue)
	}
	return c, nil
}

func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("unit %q: %w", s, ErrUnknownValue)
	}
	return u, nil
}

func ParseStatus(s string) (ProductStatus, error) {
	st := ProductStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("status %q: %w", s, ErrUnknownValue)
	}
	return st, nil
}

func ParseAdjustmentType(s string) (AdjustmentType, error) {
	t := AdjustmentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("adjustment type %q: %w", s, ErrUnknownValue)
	}
	return t, nil
}

func ParseReason(s string) (Reason, error) {
	r := Reason(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("reason %q: %w", s, ErrUnknownValue)
	}
	return r, nil
}
