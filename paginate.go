package gopaginate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnsupportedSource is returned by Paginate for a source that is neither
// a Repository nor a *gorm.DB.
var ErrUnsupportedSource = errors.New("unsupported pagination source")

// Paginate returns one page from source, which is either a Repository[T] or
// a *gorm.DB query. searchOptions only applies to repositories: it is a
// SearchOptions value or a bare Where filter.
func Paginate[T any](ctx context.Context, source any, options *Options, searchOptions any) (*Pagination[T], error) {
	switch src := source.(type) {
	case Repository[T]:
		return PaginateRepository(ctx, src, options, searchOptions)
	case *gorm.DB:
		return PaginateQuery[T](ctx, src, options)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, source)
	}
}

// PaginateRepository returns one page of repo. A page below 1 yields an
// empty page without touching the repository.
func PaginateRepository[T any](
	ctx context.Context,
	repo Repository[T],
	options *Options,
	searchOptions any,
) (*Pagination[T], error) {
	resolved := resolveOptions(ctx, options)
	if resolved.page < 1 {
		return newPagination(options, resolved, []T{}, new(int64)), nil
	}

	search := normalizeSearchOptions(searchOptions)
	items, total, err := fetchPage(ctx, resolved.countQueries,
		func(ctx context.Context) ([]T, error) {
			return repo.Find(ctx, FindOptions{
				Skip:      resolved.offset(),
				Take:      resolved.limit,
				Where:     search.Where,
				Order:     search.Order,
				Relations: search.Relations,
			})
		},
		func(ctx context.Context) (int64, error) {
			return repo.Count(ctx, search.Where)
		},
	)
	if err != nil {
		return nil, err
	}

	return newPagination(options, resolved, items, total), nil
}

// PaginateQuery returns one page of entities selected by db. db is not
// modified; the total is counted over db wrapped as a subquery.
func PaginateQuery[T any](ctx context.Context, db *gorm.DB, options *Options) (*Pagination[T], error) {
	resolved := resolveOptions(ctx, options)

	items, total, err := fetchPage(ctx, resolved.countQueries,
		func(ctx context.Context) ([]T, error) {
			items := make([]T, 0, capacityHint(resolved.limit))
			err := applyPage(ctx, db, resolved).Find(&items).Error

			return items, err
		},
		func(ctx context.Context) (int64, error) {
			return countQuery(ctx, db, new(T))
		},
	)
	if err != nil {
		return nil, err
	}

	return newPagination(options, resolved, items, total), nil
}

// PaginateRaw is PaginateQuery for raw rows: each row is scanned into R,
// typically map[string]any or a DTO matching the selected columns. db must
// carry a model or a table.
func PaginateRaw[R any](ctx context.Context, db *gorm.DB, options *Options) (*Pagination[R], error) {
	resolved := resolveOptions(ctx, options)

	rows, total, err := fetchPage(ctx, resolved.countQueries,
		func(ctx context.Context) ([]R, error) {
			rows := make([]R, 0, capacityHint(resolved.limit))
			err := applyPage(ctx, db, resolved).Scan(&rows).Error

			return rows, err
		},
		func(ctx context.Context) (int64, error) {
			return countQuery(ctx, db, nil)
		},
	)
	if err != nil {
		return nil, err
	}

	return newPagination(options, resolved, rows, total), nil
}

// PaginateRawAndEntities runs the page query once and returns both the page
// of entities and the raw rows they were hydrated from, in the same order.
// Raw columns that do not map to a field of T are only present in the raw
// rows.
func PaginateRawAndEntities[T any](
	ctx context.Context,
	db *gorm.DB,
	options *Options,
) (*Pagination[T], []map[string]any, error) {
	resolved := resolveOptions(ctx, options)

	type rawAndEntities struct {
		raw      []map[string]any
		entities []T
	}

	result, total, err := fetchPage(ctx, resolved.countQueries,
		func(ctx context.Context) (rawAndEntities, error) {
			query := applyPage(ctx, db, resolved)
			if query.Statement.Model == nil && query.Statement.Table == "" && query.Statement.TableExpr == nil {
				query = query.Model(new(T))
			}

			raw := make([]map[string]any, 0, capacityHint(resolved.limit))
			if err := query.Scan(&raw).Error; err != nil {
				return rawAndEntities{}, err
			}

			entities, err := hydrate[T](ctx, db, raw)
			if err != nil {
				return rawAndEntities{}, err
			}

			return rawAndEntities{raw: raw, entities: entities}, nil
		},
		func(ctx context.Context) (int64, error) {
			return countQuery(ctx, db, new(T))
		},
	)
	if err != nil {
		return nil, nil, err
	}

	return newPagination(options, resolved, result.entities, total), result.raw, nil
}

// applyPage returns a clone of db bound to ctx with the resolved page as
// its only LIMIT/OFFSET. Paging already present on db is replaced. Both
// pagination types render the same SQL.
func applyPage(ctx context.Context, db *gorm.DB, resolved resolvedOptions) *gorm.DB {
	tx := db.WithContext(ctx)
	delete(tx.Statement.Clauses, limitClauseName)

	limit := resolved.limit
	if resolved.paginationType == PaginationTypeTakeAndSkip {
		return tx.Clauses(clause.Limit{Limit: &limit, Offset: resolved.offset()})
	}

	return tx.Limit(limit).Offset(resolved.offset())
}

// fetchPage runs fetch and, when countQueries is set, count concurrently.
// The first failure cancels the other call and is returned as is; no
// partial result is delivered.
func fetchPage[I any](
	ctx context.Context,
	countQueries bool,
	fetch func(context.Context) (I, error),
	count func(context.Context) (int64, error),
) (I, *int64, error) {
	var (
		items I
		total *int64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = fetch(gCtx)

		return err
	})

	if countQueries {
		g.Go(func() error {
			n, err := count(gCtx)
			if err != nil {
				return err
			}

			total = &n

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var empty I
		return empty, nil, err
	}

	return items, total, nil
}

// capacityHint bounds preallocation, since limit comes from user input.
func capacityHint(limit int) int {
	return min(max(limit, 0), MaxLimit)
}

func newPagination[T any](options *Options, resolved resolvedOptions, items []T, total *int64) *Pagination[T] {
	params := CreateParams[T]{
		Items:       items,
		TotalItems:  total,
		CurrentPage: resolved.page,
		Limit:       resolved.limit,
		Route:       resolved.route,
	}
	if options != nil {
		params.MetaTransformer = options.MetaTransformer
		params.RoutingLabels = options.RoutingLabels
	}

	return CreatePaginationObject(params)
}
