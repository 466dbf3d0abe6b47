package coldata

import (
	"encoding/json"
	"fmt"
)

// asFloat64 coerces a decoded-JSON or native numeric value to float64.
// Accepts json.Number (preserved from type inference), float64, float32,
// int, and int64.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asInt64 coerces a decoded-JSON or native numeric value to int64,
// requiring it to be whole-valued.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return i, true
		}
		// Fall back to float parsing for whole-valued numbers written
		// with a fractional-looking literal, e.g. "100000.0".
		f, ferr := n.Float64()
		if ferr != nil || f != float64(int64(f)) {
			return 0, false
		}

		return int64(f), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}

		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)

	return b, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)

	return s, ok
}

func typeMismatchError(index int, want string, got any) error {
	return fmt.Errorf("value at row %d is not a valid %s: %v (%T)", index, want, got, got)
}
