package gopaginate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// IsNormalizedLimitMax clamps limit into (0, maxLimit]. The second return
// value reports whether limit was already within bounds.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	if limit <= 0 {
		return DefaultLimit, false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

// resolveMaxLimit applies Options.MaxLimit to an already resolved limit.
// maxLimit <= 0 means no bound.
func resolveMaxLimit(logger zerolog.Logger, limit int, maxLimit int) int {
	if maxLimit <= 0 {
		return limit
	}

	normalized, ok := IsNormalizedLimitMax(limit, maxLimit)
	if !ok {
		logger.Warn().
			Int("limit", limit).
			Int("maxLimit", maxLimit).
			Int("resolved", normalized).
			Msgf("Limit %d is outside of (0, %d], using %d.", limit, maxLimit, normalized)
	}

	return normalized
}

// resolvePageOffset falls back to DefaultPage when the offset of page does
// not fit in int.
func resolvePageOffset(logger zerolog.Logger, page int, limit int) int {
	if limit <= 0 || page <= 1 || page-1 <= math.MaxInt/limit {
		return page
	}

	logger.Warn().
		Int("page", page).
		Int("limit", limit).
		Int("default", DefaultPage).
		Msgf("Offset of page %d with limit %d overflows, falling back to default \"%d\".", page, limit, DefaultPage)

	return DefaultPage
}

// resolveNumericOption accepts value only if it coerces to a non-negative
// integer. Anything else is reported to logger and replaced with
// defaultValue.
func resolveNumericOption(logger zerolog.Logger, key string, value any, defaultValue int) int {
	resolved := coerceNumber(value)
	if resolved >= 0 && resolved == math.Trunc(resolved) && resolved < float64(math.MaxInt) {
		return int(resolved)
	}

	logger.Warn().
		Str("key", key).
		Str("value", fmt.Sprintf("%v", value)).
		Float64("resolved", resolved).
		Int("default", defaultValue).
		Msgf(
			"Query parameter %q with value \"%v\" was resolved as \"%v\", please validate your query input! Falling back to default \"%d\".",
			key, value, resolved, defaultValue,
		)

	return defaultValue
}

// coerceNumber converts a loosely typed parameter into a float64. Missing
// and unparsable values yield NaN; a blank string is zero.
func coerceNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return math.NaN()
	case json.Number:
		value = v.String()
	case string:
		if strings.TrimSpace(v) == "" {
			return 0
		}
		value = strings.TrimSpace(v)
	}

	resolved, err := cast.ToFloat64E(value)
	if err != nil {
		return math.NaN()
	}

	return resolved
}
