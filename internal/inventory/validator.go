package inventory

import (
	"fmt"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

const MsgNegativeStock = "Stock cannot be negative"

// StockCheck is the outcome of validating a proposed stock level.
type StockCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Delta   int    `json:"delta"`
	// Changed is false exactly when Delta is zero.
	Changed bool `json:"changed"`
}

// ValidateStock checks a proposed stock level for product. The level must be
// between zero and MaxStock; MinStock is not a bound. With no product the
// check is invalid and carries no message.
func ValidateStock(product *models.Product, proposed int) StockCheck {
	if product == nil {
		return StockCheck{}
	}

	c := StockCheck{Delta: proposed - product.CurrentStock}
	c.Changed = c.Delta != 0

	switch {
	case proposed < 0:
		c.Message = MsgNegativeStock
	case proposed > product.MaxStock:
		c.Message = fmt.Sprintf("Cannot exceed max stock (%d)", product.MaxStock)
	default:
		c.Valid = true
	}
	return c
}

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type FormCheck struct {
	Valid  bool         `json:"valid"`
	Stock  StockCheck   `json:"stock"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ValidateForm validates a whole adjustment form against product.
func ValidateForm(product *models.Product, form models.AdjustmentForm) FormCheck {
	check := FormCheck{Stock: ValidateStock(product, form.NewStock)}

	if check.Stock.Message != "" {
		check.Errors = append(check.Errors, FieldError{Field: "newStock", Description: check.Stock.Message})
	}

	switch {
	case form.AdjustmentType == "":
		check.Errors = append(check.Errors, FieldError{Field: "adjustmentType", Description: "Adjustment type is required"})
	case !form.AdjustmentType.Valid():
		check.Errors = append(check.Errors, FieldError{Field: "adjustmentType", Description: fmt.Sprintf("Unknown adjustment type %q", form.AdjustmentType)})
	}

	switch {
	case form.Reason == "":
		check.Errors = append(check.Errors, FieldError{Field: "reason", Description: "Reason is required"})
	case !form.Reason.Valid():
		check.Errors = append(check.Errors, FieldError{Field: "reason", Description: fmt.Sprintf("Unknown reason %q", form.Reason)})
	}

	check.Valid = check.Stock.Valid && len(check.Errors) == 0
	return check
}
