package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// GetProductsHandler godoc
// @Summary Search products
// @Description Case-insensitive text search over name, SKU and description plus exact filters.
// @Tags products
// @Produce json
// @Param query query string false "Text to search for"
// @Param category query string false "Category"
// @Param status query string false "Status"
// @Param minStock query int false "Minimum current stock (inclusive)"
// @Param maxStock query int false "Maximum current stock (inclusive)"
// @Success 200 {object} ProductsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseProductFilter(r.URL.Query())
	if len(errs) > 0 {
		respond(w, r, http.StatusBadRequest, Response{Error: "Bad Request", Message: "invalid search parameters", Errors: errs})
		return
	}

	products, err := s.Inventory.Search(r.Context(), filter)
	if err != nil {
		respondInternal(w, r, err, "could not fetch products")
		return
	}

	respond(w, r, http.StatusOK, Response{Success: true, Data: products, Meta: &Meta{TotalCount: len(products)}})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := s.Inventory.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err, "could not fetch product")
		return
	}
	respondData(w, r, http.StatusOK, product)
}

// GetProductBySKUHandler godoc
// @Summary Get product by SKU
// @Description The SKU is matched case-insensitively.
// @Tags products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/sku/{sku} [get]
func (s *Server) GetProductBySKUHandler(w http.ResponseWriter, r *http.Request) {
	product, err := s.Inventory.GetBySKU(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		respondInternal(w, r, err, "could not fetch product")
		return
	}
	respondData(w, r, http.StatusOK, product)
}
