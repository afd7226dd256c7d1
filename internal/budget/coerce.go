package budget

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"weddash/internal/validation"
)

// CoerceNonNegative converts a stored budget amount to a number.
//
// Finite non-negative numbers up to validation.MaxBudgetAmount, and strings or
// json.Number values that parse to one, are returned as-is with ok=true. Every
// other value, including nil, negatives, NaN, infinities and amounts over the
// cap, becomes 0 with ok=false. Callers log and
// count the ok=false case; it is never surfaced to viewers.
func CoerceNonNegative(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > validation.MaxBudgetAmount {
		return 0, false
	}
	return f, true
}
