package gopaginate

import "github.com/samber/lo"

// SearchOptions is the structured filter passed to a Repository.
type SearchOptions struct {
	// Where is handed to gorm.DB.Where: a struct, a map, a clause.Expression
	// or a raw SQL string.
	Where any
	// Order is Orderings, []OrderBy, an ORDER BY string, a
	// clause.OrderByColumn or a clause.Expression such as clause.OrderBy.
	// Other types are rejected by GormRepository.
	Order any
	// Relations are preloaded on every fetched item.
	Relations []string
}

// normalizeSearchOptions returns in unchanged if it is already structured
// and wraps it as a bare Where filter otherwise.
//
// Structured means SearchOptions, a non-nil *SearchOptions, or a map with a
// "where" or "order" key.
func normalizeSearchOptions(in any) SearchOptions {
	switch v := in.(type) {
	case SearchOptions:
		return v
	case *SearchOptions:
		if v == nil {
			return SearchOptions{}
		}

		return *v
	case map[string]any:
		if !lo.HasKey(v, "where") && !lo.HasKey(v, "order") {
			break
		}

		ret := SearchOptions{
			Where: v["where"],
			Order: v["order"],
		}
		if relations, ok := v["relations"].([]string); ok {
			ret.Relations = relations
		}

		return ret
	}

	return SearchOptions{Where: in}
}
