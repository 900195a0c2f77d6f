package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/inventory"
	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

type ValidationError = inventory.FieldError

func parseOptionalInt(q url.Values, name string, errs *[]ValidationError) *int {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: name, Description: fmt.Sprintf("%s must be an integer", name)})
		return nil
	}
	return &v
}

// parseProductFilter reads the catalog search parameters of a query string.
func parseProductFilter(q url.Values) (repo.ProductFilter, []ValidationError) {
	errs := []ValidationError{}
	pf := repo.ProductFilter{Query: strings.TrimSpace(q.Get("query"))}
	if pf.Query == "" {
		pf.Query = strings.TrimSpace(q.Get("q"))
	}

	if s := q.Get("category"); s != "" {
		c, err := models.ParseCategory(s)
		if err != nil {
			errs = append(errs, ValidationError{Field: "category", Description: err.Error()})
		}
		pf.Category = c
	}
	if s := q.Get("status"); s != "" {
		st, err := models.ParseStatus(s)
		if err != nil {
			errs = append(errs, ValidationError{Field: "status", Description: err.Error()})
		}
		pf.Status = st
	}

	pf.MinStock = parseOptionalInt(q, "minStock", &errs)
	pf.MaxStock = parseOptionalInt(q, "maxStock", &errs)
	if pf.MinStock != nil && pf.MaxStock != nil && *pf.MinStock > *pf.MaxStock {
		errs = append(errs, ValidationError{Field: "minStock", Description: "minStock cannot be greater than maxStock"})
	}

	return pf, errs
}

// parseTimestamp accepts RFC3339. A '+' of the zone offset that arrived
// decoded as a space is put back.
func parseTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// parseAdjustmentFilter reads the history window and page of a query string.
func parseAdjustmentFilter(q url.Values, paginate bool) (repo.AdjustmentFilter, []ValidationError) {
	errs := []ValidationError{}
	var af repo.AdjustmentFilter

	var err error
	if af.Since, err = parseTimestamp(q.Get("since")); err != nil {
		errs = append(errs, ValidationError{Field: "since", Description: "invalid since date format"})
	}
	if af.Until, err = parseTimestamp(q.Get("until")); err != nil {
		errs = append(errs, ValidationError{Field: "until", Description: "invalid until date format"})
	}
	if !paginate {
		return af, errs
	}

	af.Limit = parseOptionalInt(q, "limit", &errs)
	if af.Limit != nil && *af.Limit <= 0 {
		errs = append(errs, ValidationError{Field: "limit", Description: "limit must be greater than zero"})
	}
	af.Offset = parseOptionalInt(q, "offset", &errs)
	if af.Offset != nil && *af.Offset < 0 {
		errs = append(errs, ValidationError{Field: "offset", Description: "offset must be zero or positive"})
	}
	return af, errs
}
