package gopaginate

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Meta describes the page that was returned.
type Meta struct {
	// TotalItems is nil when counting was disabled.
	TotalItems   *int64 `json:"totalItems,omitempty"`
	ItemCount    int    `json:"itemCount"`
	ItemsPerPage int    `json:"itemsPerPage"`
	// TotalPages is nil when counting was disabled.
	TotalPages  *int64 `json:"totalPages,omitempty"`
	CurrentPage int    `json:"currentPage"`
}

// Links are ready to use URLs of the neighbouring pages. A link that does
// not apply to the current page is an empty string.
type Links struct {
	First    string `json:"first"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

// Pagination is one page of items.
type Pagination[T any] struct {
	Items []T `json:"items"`
	// Meta holds a Meta, or whatever Options.MetaTransformer returned.
	Meta  any    `json:"meta"`
	Links *Links `json:"links,omitempty"`
}

// PageMeta returns Meta unless it was replaced by a MetaTransformer.
func (p *Pagination[T]) PageMeta() (Meta, bool) {
	if p == nil {
		return Meta{}, false
	}

	meta, ok := p.Meta.(Meta)

	return meta, ok
}

// CreateParams is the input of CreatePaginationObject.
type CreateParams[T any] struct {
	Items []T
	// TotalItems is nil when the total is unknown.
	TotalItems      *int64
	CurrentPage     int
	Limit           int
	Route           string
	MetaTransformer MetaTransformer
	RoutingLabels   *RoutingLabels
}

// CreatePaginationObject assembles a page from already fetched items.
func CreatePaginationObject[T any](params CreateParams[T]) *Pagination[T] {
	items := params.Items
	if items == nil {
		items = []T{}
	}

	var totalPages *int64
	if params.TotalItems != nil {
		totalPages = lo.ToPtr(countPages(*params.TotalItems, params.Limit))
	}

	meta := Meta{
		TotalItems:   params.TotalItems,
		ItemCount:    len(items),
		ItemsPerPage: params.Limit,
		TotalPages:   totalPages,
		CurrentPage:  params.CurrentPage,
	}

	ret := &Pagination[T]{
		Items: items,
		Meta:  meta,
		Links: buildLinks(params, totalPages),
	}
	if params.MetaTransformer != nil {
		ret.Meta = params.MetaTransformer(meta)
	}

	return ret
}

func countPages(totalItems int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}

	return (totalItems + int64(limit) - 1) / int64(limit)
}

func buildLinks[T any](params CreateParams[T], totalPages *int64) *Links {
	if params.Route == "" || totalPages == nil {
		return nil
	}

	var (
		route      = params.Route
		page       = params.CurrentPage
		limitLabel = params.RoutingLabels.limitLabel()
		pageLabel  = params.RoutingLabels.pageLabel()
		symbol     = lo.Ternary(strings.Contains(route, "?"), "&", "?")
	)

	pageLink := func(target int64) string {
		return fmt.Sprintf("%s%s%s=%d&%s=%d", route, symbol, pageLabel, target, limitLabel, params.Limit)
	}

	links := &Links{
		First: fmt.Sprintf("%s%s%s=%d", route, symbol, limitLabel, params.Limit),
	}
	if page > 1 {
		links.Previous = pageLink(int64(page - 1))
	}
	if int64(page) < *totalPages {
		links.Next = pageLink(int64(page + 1))
	}
	if *totalPages > 0 {
		links.Last = pageLink(*totalPages)
	}

	return links
}
