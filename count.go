package gopaginate

import (
	"context"

	"gorm.io/gorm"
)

// countSubqueryAlias names the derived table the count runs over. MySQL
// and Postgres both require one.
const countSubqueryAlias = "count_subquery"

// limitClauseName is the key of both LIMIT and OFFSET in
// gorm.Statement.Clauses.
const limitClauseName = "LIMIT"

// countQuery returns the number of rows db would yield without its
// LIMIT/OFFSET. The query is wrapped as a subquery rather than counted in
// place, so GROUP BY, DISTINCT and fan-out joins count result rows instead
// of table rows. model is used when db has neither a model nor a table.
//
// db itself is left untouched.
func countQuery(ctx context.Context, db *gorm.DB, model any) (int64, error) {
	subquery := countSubquery(ctx, db, model)

	var total int64
	err := db.Session(&gorm.Session{NewDB: true, Context: ctx}).
		Table("(?) AS "+countSubqueryAlias, subquery).
		Select("COUNT(*) AS value").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// countSubquery clones db and strips everything that does not affect which
// rows are returned: paging and preloads.
func countSubquery(ctx context.Context, db *gorm.DB, model any) *gorm.DB {
	subquery := db.Session(&gorm.Session{Context: ctx})
	delete(subquery.Statement.Clauses, limitClauseName)
	subquery.Statement.Preloads = map[string][]any{}

	if subquery.Statement.Model == nil && subquery.Statement.Table == "" &&
		subquery.Statement.TableExpr == nil && model != nil {
		subquery = subquery.Model(model)
	}

	return subquery
}
