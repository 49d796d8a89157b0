package gopaginate

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Direction defines the sort direction of a page.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	if o.Column == "" {
		return fmt.Errorf("empty ordering column name")
	}

	// Column names end up in raw SQL, so only a safe charset is allowed.
	if !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// ToSQL renders the orderings as "a ASC, b DESC".
func (o Orderings) ToSQL() string {
	return strings.Join(lo.Map(o, func(ordering OrderBy, _ int) string {
		return fmt.Sprintf("%s %s", ordering.Column, ordering.Direction)
	}), ", ")
}

// ToClause converts the orderings into a GORM ORDER BY clause. Column
// names are passed raw so qualified names like "users.id" keep working.
func (o Orderings) ToClause() clause.OrderBy {
	return clause.OrderBy{
		Columns: lo.Map(o, func(ordering OrderBy, _ int) clause.OrderByColumn {
			return clause.OrderByColumn{
				Column: clause.Column{Name: ordering.Column, Raw: true},
				Desc:   ordering.Direction == DirectionDESC,
			}
		}),
	}
}

// Apply validates the orderings and adds them to the query. Empty orderings
// leave the query untouched.
func (o Orderings) Apply(db *gorm.DB) (*gorm.DB, error) {
	if len(o) == 0 {
		return db, nil
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return db.Clauses(o.ToClause()), nil
}

// Validate reports orderings with an unknown direction or a column name
// containing forbidden symbols.
func (o Orderings) Validate() error {
	for _, ordering := range o {
		if err := ordering.validate(); err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from strings of the form "alias [asc|desc]".
// A missing direction means ascending. Aliases are resolved through
// columnMapping; an unknown alias is reported with the closest known one.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make(Orderings, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)

	for _, stringOrdering := range stringsOrderings {
		fields := strings.Fields(stringOrdering)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
		}

		direction := DirectionASC
		if len(fields) == 2 {
			direction = Direction(strings.ToUpper(fields[1]))
		}
		if !direction.Valid() {
			return nil, fmt.Errorf("invalid ordering direction '%s'", fields[1])
		}

		columnName, ok := columnMapping[fields[0]]
		if !ok || columnName == "" {
			return nil, fmt.Errorf("invalid column alias '%s'. closest: '%s'", fields[0], closestAlias(fields[0], aliases))
		}

		ret = append(ret, OrderBy{
			Column:    columnName,
			Direction: direction,
		})
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
