package repo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

// ErrInvalidCatalog is returned when a catalog file cannot be used for seeding.
var ErrInvalidCatalog = errors.New("invalid catalog")

var catalogColumns = []string{
	"sku", "name", "description", "category", "current_stock", "min_stock", "max_stock",
	"unit", "zone", "aisle", "rack", "shelf", "price",
}

// LoadCatalogCSV parses a catalog seed file. The header row names the
// columns in any order; id and status are optional, status being derived
// from the stock levels when absent.
func LoadCatalogCSV(r io.Reader, now time.Time) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidCatalog, err)
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range catalogColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidCatalog, col)
		}
	}

	var products []models.Product
	for line := 2; ; line++ { // header is line 1
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}

		p, err := parseCatalogRow(record, index, now)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCatalog, line, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func parseCatalogRow(record []string, index map[string]int, now time.Time) (models.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var errs []error
	atoi := func(name string) int {
		v, err := strconv.Atoi(field(name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", name, field(name)))
		}
		return v
	}

	p := models.Product{
		ID:           field("id"),
		SKU:          field("sku"),
		Name:         field("name"),
		Description:  field("description"),
		CurrentStock: atoi("current_stock"),
		MinStock:     atoi("min_stock"),
		MaxStock:     atoi("max_stock"),
		Location: models.Location{
			Zone:  field("zone"),
			Aisle: field("aisle"),
			Rack:  field("rack"),
			Shelf: field("shelf"),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("price: %q is not a number", field("price")))
	}
	p.Price = price

	if p.Category, err = models.ParseCategory(field("category")); err != nil {
		errs = append(errs, err)
	}
	if p.Unit, err = models.ParseUnit(field("unit")); err != nil {
		errs = append(errs, err)
	}
	if s := field("status"); s != "" {
		if p.Status, err = models.ParseStatus(s); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return models.Product{}, errors.Join(errs...)
	}

	if err := validateCatalogProduct(p); err != nil {
		return models.Product{}, err
	}
	p.Status = models.StockStatus(p.Status, p.CurrentStock, p.MinStock)
	return p, nil
}

func validateCatalogProduct(p models.Product) error {
	switch {
	case p.SKU == "":
		return errors.New("missing sku")
	case p.Name == "":
		return errors.New("missing name")
	case p.Price < 0:
		return errors.New("invalid price")
	case p.CurrentStock < 0:
		return errors.New("invalid current_stock")
	case p.MinStock < 0 || p.MinStock > p.MaxStock:
		return errors.New("min_stock must be between 0 and max_stock")
	}
	return nil
}
