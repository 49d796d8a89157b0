package gopaginate

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindOptions is what a Repository receives for one page.
type FindOptions struct {
	Skip      int
	Take      int
	Where     any
	Order     any
	Relations []string
}

// Repository fetches and counts entities of a single type from structured
// filters, without exposing the underlying query.
type Repository[T any] interface {
	Find(ctx context.Context, opts FindOptions) ([]T, error)
	Count(ctx context.Context, where any) (int64, error)
}

// GormRepository is a Repository over a GORM connection.
type GormRepository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

// Find implements Repository.
func (r *GormRepository[T]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	query := applyWhere(r.model(ctx), opts.Where)

	query, err := applyOrder(query, opts.Order)
	if err != nil {
		return nil, err
	}

	for _, relation := range opts.Relations {
		query = query.Preload(relation)
	}

	items := make([]T, 0, capacityHint(opts.Take))
	err = query.Offset(opts.Skip).Limit(opts.Take).Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Count implements Repository.
func (r *GormRepository[T]) Count(ctx context.Context, where any) (int64, error) {
	var total int64

	err := applyWhere(r.model(ctx), where).Count(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *GormRepository[T]) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

func applyWhere(db *gorm.DB, where any) *gorm.DB {
	if where == nil {
		return db
	}

	return db.Where(where)
}

func applyOrder(db *gorm.DB, order any) (*gorm.DB, error) {
	switch v := order.(type) {
	case nil:
		return db, nil
	case Orderings:
		ordered, err := v.Apply(db)
		if err != nil {
			return nil, fmt.Errorf("cannot apply ordering: %w", err)
		}

		return ordered, nil
	case []OrderBy:
		return applyOrder(db, Orderings(v))
	case string:
		if v == "" {
			return db, nil
		}

		return db.Order(v), nil
	case clause.OrderByColumn:
		return db.Order(v), nil
	case clause.Expression:
		return db.Clauses(v), nil
	default:
		return nil, fmt.Errorf("cannot apply ordering: unsupported order type %T", order)
	}
}

var _ Repository[struct{}] = (*GormRepository[struct{}])(nil)
