package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// CreateAdjustmentHandler godoc
// @Summary Adjust the stock of a product
// @Description Validates the form, sets the stock to newStock and records the audit entry.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param adjustment body models.AdjustmentForm true "Stock adjustment"
// @Success 201 {object} AdjustmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id}/adjustments [post]
// @Security BearerAuth
func (s *Server) CreateAdjustmentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var form models.AdjustmentForm
	if err := readJSON(w, r, &form); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	product, err := s.Inventory.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err, "could not fetch product")
		return
	}

	check := inventory.ValidateForm(&product, form)
	if !check.Valid {
		respond(w, r, http.StatusUnprocessableEntity, Response{
			Error:   http.StatusText(http.StatusUnprocessableEntity),
			Message: firstMessage(check),
			Errors:  check.Errors,
		})
		return
	}

	result, err := s.Inventory.CommitAdjustment(r.Context(), id, form)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err, "could not adjust stock")
		return
	}

	msg := "Stock updated"
	if !check.Stock.Changed {
		msg = "Stock unchanged"
	}
	respond(w, r, http.StatusCreated, Response{Success: true, Data: result, Message: msg})
}

func firstMessage(check inventory.FormCheck) string {
	if len(check.Errors) > 0 {
		return check.Errors[0].Description
	}
	return "invalid adjustment"
}

// GetAdjustmentsHandler godoc
// @Summary Get the stock adjustment history of a product
// @Tags inventory
// @Produce json
// @Param id path string true "Product ID"
// @Param since query string false "Filter adjustments from this timestamp (RFC3339)"
// @Param until query string false "Filter adjustments until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} AdjustmentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id}/adjustments [get]
func (s *Server) GetAdjustmentsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.productExists(w, r, id) {
		return
	}

	af, errs := parseAdjustmentFilter(r.URL.Query(), true)
	if len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, Response{Error: "Bad Request", Message: errs[0].Description, Errors: errs})
		return
	}

	adjustments, total, err := s.Adjustments.ListByProductID(r.Context(), id, af)
	if err != nil {
		respondInternal(w, r, err, "could not retrieve adjustments")
		return
	}
	respond(w, r, http.StatusOK, Response{Success: true, Data: adjustments, Meta: &Meta{TotalCount: total}})
}

// ExportAdjustmentsHandler godoc
// @Summary Export the stock adjustment history of a product
// @Tags inventory
// @Produce text/csv, application/json
// @Param id path string true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id}/adjustments/export [get]
func (s *Server) ExportAdjustmentsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		respondError(w, r, http.StatusBadRequest, "format must be 'csv' or 'json'")
		return
	}
	if !s.productExists(w, r, id) {
		return
	}

	af, errs := parseAdjustmentFilter(r.URL.Query(), false)
	if len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, Response{Error: "Bad Request", Message: errs[0].Description, Errors: errs})
		return
	}

	adjustments, err := s.allAdjustments(r, id, af)
	if err != nil {
		respondInternal(w, r, err, "could not retrieve adjustments")
		return
	}

	filename := "adjustments-" + id + "." + format
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(adjustments); err != nil {
			logger.Error(r.Context()).Err(err).Msg("failed to write export")
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "sku", "previous_stock", "new_stock", "delta", "type", "reason", "notes", "adjusted_by", "adjusted_at"})
		for _, a := range adjustments {
			_ = csvWriter.Write([]string{
				a.ID,
				a.ProductID,
				a.ProductSKU,
				strconv.Itoa(a.PreviousStock),
				strconv.Itoa(a.NewStock),
				strconv.Itoa(a.Delta()),
				string(a.AdjustmentType),
				string(a.Reason),
				a.Notes,
				a.AdjustedBy,
				a.AdjustedAt.Format(time.RFC3339),
			})
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			logger.Error(r.Context()).Err(err).Msg("failed to write export")
		}
	}
}

// allAdjustments pages through the whole history; the Postgres repository
// caps a single page.
func (s *Server) allAdjustments(r *http.Request, id string, af repo.AdjustmentFilter) ([]models.StockAdjustment, error) {
	const page = 100
	all := []models.StockAdjustment{}
	for {
		offset, limit := len(all), page
		af.Offset, af.Limit = &offset, &limit

		batch, total, err := s.Adjustments.ListByProductID(r.Context(), id, af)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func (s *Server) productExists(w http.ResponseWriter, r *http.Request, id string) bool {
	if _, err := s.Inventory.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return false
		}
		respondInternal(w, r, err, "could not fetch product")
		return false
	}
	return true
}
