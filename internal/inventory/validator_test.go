package inventory

import (
	"testing"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

func hub() *models.Product {
	return &models.Product{ID: "2", SKU: "ELEC-002", CurrentStock: 8, MinStock: 15, MaxStock: 200}
}

func TestValidateStock(t *testing.T) {
	tests := []struct {
		name     string
		proposed int
		valid    bool
		message  string
		delta    int
	}{
		{"Negative", -10, false, "Stock cannot be negative", -18},
		{"Zero", 0, true, "", -8},
		{"Below minimum is still valid", 3, true, "", -5},
		{"Unchanged", 8, true, "", 0},
		{"At maximum", 200, true, "", 192},
		{"Above maximum", 201, false, "Cannot exceed max stock (200)", 193},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateStock(hub(), tt.proposed)
			if got.Valid != tt.valid {
				t.Errorf("expected valid=%v, got %v", tt.valid, got.Valid)
			}
			if got.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, got.Message)
			}
			if got.Delta != tt.delta {
				t.Errorf("expected delta %d, got %d", tt.delta, got.Delta)
			}
			if got.Changed != (tt.delta != 0) {
				t.Errorf("expected changed=%v, got %v", tt.delta != 0, got.Changed)
			}
		})
	}
}

func TestValidateStock_ValidityIgnoresMinStock(t *testing.T) {
	p := hub()
	for v := -5; v <= p.MaxStock+5; v++ {
		want := v >= 0 && v <= p.MaxStock
		if got := ValidateStock(p, v).Valid; got != want {
			t.Fatalf("ValidateStock(%d): expected %v, got %v", v, want, got)
		}
	}
}

func TestValidateStock_NoProduct(t *testing.T) {
	got := ValidateStock(nil, -10)
	if got.Valid || got.Message != "" {
		t.Errorf("expected silent invalid check, got %+v", got)
	}
}

func TestValidateForm(t *testing.T) {
	t.Run("Defaults are valid", func(t *testing.T) {
		check := ValidateForm(hub(), models.NewAdjustmentForm(20))
		if !check.Valid || len(check.Errors) != 0 {
			t.Errorf("expected valid form, got %+v", check)
		}
	})

	t.Run("Missing type and reason", func(t *testing.T) {
		check := ValidateForm(hub(), models.AdjustmentForm{NewStock: 20})
		if check.Valid {
			t.Fatal("expected invalid form")
		}
		fields := map[string]bool{}
		for _, e := range check.Errors {
			fields[e.Field] = true
		}
		if !fields["adjustmentType"] || !fields["reason"] {
			t.Errorf("expected adjustmentType and reason errors, got %+v", check.Errors)
		}
	})

	t.Run("Unknown values", func(t *testing.T) {
		form := models.AdjustmentForm{NewStock: 20, AdjustmentType: "gift", Reason: "whim"}
		if check := ValidateForm(hub(), form); check.Valid || len(check.Errors) != 2 {
			t.Errorf("expected two errors, got %+v", check.Errors)
		}
	})

	t.Run("Stock message is reported on newStock", func(t *testing.T) {
		check := ValidateForm(hub(), models.NewAdjustmentForm(-1))
		if check.Valid || len(check.Errors) != 1 || check.Errors[0].Field != "newStock" {
			t.Errorf("unexpected errors %+v", check.Errors)
		}
	})

	t.Run("No product", func(t *testing.T) {
		if check := ValidateForm(nil, models.NewAdjustmentForm(1)); check.Valid {
			t.Error("expected form without product to be invalid")
		}
	})
}
