// Package gopaginate provides page/limit pagination for GORM.
//
// Overview
//
// A page is computed from one of two sources:
//   - Repository: a typed find/count abstraction over a single entity type.
//     GormRepository implements it over *gorm.DB.
//   - Query: any *gorm.DB query. The total is counted by wrapping the query
//     as a subquery, so joins, DISTINCT and GROUP BY are respected.
//
// The page query and the total count run concurrently; counting can be
// switched off with Options.WithCountQueries(false).
//
// Key concepts
//   - Options: requested page, limit, route and strategy. Page and limit
//     are loosely typed and fall back to DefaultPage and DefaultLimit with
//     a warning when they are not non-negative integers.
//   - Pagination: items, Meta and optional Links to neighbouring pages.
//   - Orderings: multi-column ordering with explicit directions.
//
// Usage:
//
//	page, err := gopaginate.PaginateQuery[User](ctx,
//		db.Model(&User{}).Where("age > ?", 18),
//		gopaginate.NewOptions().WithPage(2).WithLimit(20).WithRoute("/users"),
//	)
package gopaginate
