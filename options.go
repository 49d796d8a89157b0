package gopaginate

import (
	"context"

	"github.com/rs/zerolog"
)

// PaginationType selects how a page is applied to a query.
type PaginationType string

const (
	// PaginationTypeLimitAndOffset applies the page with db.Limit/db.Offset.
	PaginationTypeLimitAndOffset PaginationType = "limit"
	// PaginationTypeTakeAndSkip applies the page as an explicit LIMIT clause.
	PaginationTypeTakeAndSkip PaginationType = "take"
)

func (t PaginationType) Valid() bool {
	return t == PaginationTypeLimitAndOffset || t == PaginationTypeTakeAndSkip
}

// RoutingLabels renames the query parameters used in generated links.
type RoutingLabels struct {
	LimitLabel string `json:"limitLabel,omitempty"`
	PageLabel  string `json:"pageLabel,omitempty"`
}

func (l *RoutingLabels) limitLabel() string {
	if l == nil || l.LimitLabel == "" {
		return "limit"
	}

	return l.LimitLabel
}

func (l *RoutingLabels) pageLabel() string {
	if l == nil || l.PageLabel == "" {
		return "page"
	}

	return l.PageLabel
}

// MetaTransformer replaces the default Meta of a page with a custom value.
type MetaTransformer func(Meta) any

// Options describes the requested page.
//
// Page and Limit are loosely typed on purpose: they usually come straight
// from request input and are sanitized when the page is resolved. Values
// that are not non-negative integers fall back to DefaultPage and
// DefaultLimit with a warning.
type Options struct {
	Page  any
	Limit any
	// Route is the base URL used to build Links. Links are omitted when empty.
	Route          string
	PaginationType PaginationType
	// CountQueries disables the total count query when set to false.
	CountQueries *bool
	// MaxLimit, when positive, clamps the resolved limit into (0, MaxLimit].
	// A limit of 0 then falls back to DefaultLimit.
	MaxLimit        int
	MetaTransformer MetaTransformer
	RoutingLabels   *RoutingLabels
	// Logger receives fallback warnings. See resolveLogger for the lookup order.
	Logger *zerolog.Logger
}

func NewOptions() *Options {
	return new(Options)
}

func (o *Options) WithPage(page any) *Options {
	if o == nil {
		o = new(Options)
	}

	o.Page = page

	return o
}

func (o *Options) WithLimit(limit any) *Options {
	if o == nil {
		o = new(Options)
	}

	o.Limit = limit

	return o
}

func (o *Options) WithRoute(route string) *Options {
	if o == nil {
		o = new(Options)
	}

	o.Route = route

	return o
}

func (o *Options) WithPaginationType(paginationType PaginationType) *Options {
	if o == nil {
		o = new(Options)
	}

	o.PaginationType = paginationType

	return o
}

// WithCountQueries toggles the total count query. Counting is on by default.
func (o *Options) WithCountQueries(countQueries bool) *Options {
	if o == nil {
		o = new(Options)
	}

	o.CountQueries = &countQueries

	return o
}

func (o *Options) WithMaxLimit(maxLimit int) *Options {
	if o == nil {
		o = new(Options)
	}

	o.MaxLimit = maxLimit

	return o
}

func (o *Options) WithMetaTransformer(transformer MetaTransformer) *Options {
	if o == nil {
		o = new(Options)
	}

	o.MetaTransformer = transformer

	return o
}

func (o *Options) WithRoutingLabels(labels RoutingLabels) *Options {
	if o == nil {
		o = new(Options)
	}

	o.RoutingLabels = &labels

	return o
}

func (o *Options) WithLogger(logger zerolog.Logger) *Options {
	if o == nil {
		o = new(Options)
	}

	o.Logger = &logger

	return o
}

type resolvedOptions struct {
	page           int
	limit          int
	route          string
	paginationType PaginationType
	countQueries   bool
}

// offset is the number of rows preceding the resolved page. It is negative
// for page 0, which GORM treats as no offset.
func (r resolvedOptions) offset() int {
	return (r.page - 1) * r.limit
}

func resolveOptions(ctx context.Context, options *Options) resolvedOptions {
	if options == nil {
		options = new(Options)
	}

	logger := resolveLogger(ctx, options.Logger)

	ret := resolvedOptions{
		page:           resolveNumericOption(logger, "page", options.Page, DefaultPage),
		limit:          resolveNumericOption(logger, "limit", options.Limit, DefaultLimit),
		route:          options.Route,
		paginationType: options.PaginationType,
		countQueries:   true,
	}

	ret.limit = resolveMaxLimit(logger, ret.limit, options.MaxLimit)
	ret.page = resolvePageOffset(logger, ret.page, ret.limit)

	if ret.paginationType == "" {
		ret.paginationType = PaginationTypeLimitAndOffset
	}
	if options.CountQueries != nil {
		ret.countQueries = *options.CountQueries
	}

	return ret
}
