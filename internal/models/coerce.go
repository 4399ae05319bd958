package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// IntFrom extracts an integer from a loosely-typed JSON value, flooring
// fractional numbers. Anything non-numeric (including NaN/Inf) yields def.
func IntFrom(v any, def int) int {
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return int(math.Floor(n))
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return int(math.Floor(f))
		}
		return def
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(math.Floor(f))
		}
		return def
	case bool:
		return def
	default:
		return def
	}
}
