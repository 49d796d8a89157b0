package gopaginate

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

var _validate = validator.New()

// RawOptions is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawOptions `json:",inline"`
//	}
type RawOptions struct {
	// Page - requested page, 1-indexed. Sanitized when the page is resolved.
	Page any `json:"page" form:"page"`
	// Limit - maximum number of records on the page. Sanitized when the page
	// is resolved.
	Limit any `json:"limit" form:"limit"`
	// PaginationType - "limit" or "take". Empty means "limit".
	PaginationType string `json:"paginationType,omitempty" form:"paginationType" validate:"omitempty,oneof=limit take"`
	// CountQueries - set to false to skip counting the total.
	CountQueries *bool `json:"countQueries,omitempty" form:"countQueries"`
}

// Decode validates RawOptions and converts them into *Options bound to
// route. Page and Limit are not rejected here; invalid values fall back to
// their defaults later.
func (r RawOptions) Decode(route string) (*Options, error) {
	if err := _validate.Struct(r); err != nil {
		return nil, fmt.Errorf("invalid pagination options: %w", err)
	}

	return &Options{
		Page:           r.Page,
		Limit:          r.Limit,
		Route:          route,
		PaginationType: PaginationType(r.PaginationType),
		CountQueries:   r.CountQueries,
	}, nil
}

// ParseQuery reads page and limit from a request query using the same
// labels that generated links carry. Missing parameters stay nil.
func ParseQuery(values url.Values, labels *RoutingLabels) RawOptions {
	var ret RawOptions

	if values.Has(labels.pageLabel()) {
		ret.Page = values.Get(labels.pageLabel())
	}
	if values.Has(labels.limitLabel()) {
		ret.Limit = values.Get(labels.limitLabel())
	}

	return ret
}
