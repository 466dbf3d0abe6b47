// Package typeinfer chooses, given a column's raw decoded-JSON values, the
// narrowest PhysicalType that represents every value without loss.
//
// The inference ladder follows a type-widening idea: a column's type
// narrows or widens as values are observed. See DESIGN.md.
package typeinfer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonxfmt/jonx/errs"
	"github.com/jonxfmt/jonx/format"
)

// maxFloat16FractionDigits is the "at most 3 fractional digits" eligibility
// bound for narrowing a float column to float16.
const maxFloat16FractionDigits = 3

// Infer chooses the PhysicalType for a column given every value observed
// for that field, in row order. values elements are either the Go types
// produced by decoding JSON with a json.Decoder configured via
// UseNumber() (bool, json.Number, string, or anything else —
// map[string]any, []any, nil — for the json fallback), or the native
// int/int64/float32/float64 values coldata.Decode produces for a numeric
// column. Accepting both keeps re-encoding a decoded column's output
// stable: Infer(coldata.Decode(...)) must choose the same PhysicalType the
// original encoding did.
//
// Returns errs.ErrValueOutOfRange if every value is numeric but one
// exceeds int32 (for integer-only columns) or float32 (for columns with
// any fractional value).
func Infer(values []any) (format.PhysicalType, error) {
	if allBool(values) {
		return format.TypeBool, nil
	}

	if allNumeric(values) {
		return inferNumeric(values)
	}

	if allString(values) {
		return format.TypeStr, nil
	}

	return format.TypeJSON, nil
}

func allBool(values []any) bool {
	for _, v := range values {
		if _, ok := v.(bool); !ok {
			return false
		}
	}

	return len(values) > 0
}

func allString(values []any) bool {
	for _, v := range values {
		if _, ok := v.(string); !ok {
			return false
		}
	}

	return len(values) > 0
}

func allNumeric(values []any) bool {
	for _, v := range values {
		if !isNumericValue(v) {
			return false
		}
	}

	return len(values) > 0
}

// isNumericValue reports whether v is one of the types Infer treats as
// numeric: json.Number from JSON decoding, or a native Go number as
// produced by coldata.Decode or passed directly via
// container.RecordFromMap.
func isNumericValue(v any) bool {
	switch v.(type) {
	case json.Number, int, int64, float32, float64:
		return true
	default:
		return false
	}
}

// numericFloat64 converts a value already confirmed numeric by
// isNumericValue to float64.
func numericFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a valid number", errs.ErrValueOutOfRange, n)
		}

		return f, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %v (%T) is not numeric", errs.ErrValueOutOfRange, v, v)
	}
}

// inferNumeric assigns int16/int32/float16/float32 depending on whether
// every value is whole and how wide its magnitude or precision is.
func inferNumeric(values []any) (format.PhysicalType, error) {
	allWhole := true
	for _, v := range values {
		if !isWhole(v) {
			allWhole = false

			break
		}
	}

	if allWhole {
		return inferInteger(values)
	}

	return inferFloat(values)
}

// isWhole reports whether v, a value already confirmed numeric by
// isNumericValue, has no fractional part.
func isWhole(v any) bool {
	switch n := v.(type) {
	case json.Number:
		s := string(n)
		if !strings.ContainsAny(s, ".eE") {
			return true
		}

		f, err := n.Float64()
		if err != nil {
			return false
		}

		return f == math.Trunc(f)
	case int, int64:
		return true
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case float64:
		return n == math.Trunc(n)
	default:
		return false
	}
}

func inferInteger(values []any) (format.PhysicalType, error) {
	widest := format.TypeInt16
	for _, v := range values {
		f, err := numericFloat64(v)
		if err != nil {
			return 0, err
		}

		switch {
		case f < math.MinInt32 || f > math.MaxInt32:
			return 0, fmt.Errorf("%w: %v exceeds int32 range", errs.ErrValueOutOfRange, v)
		case f < -32768 || f > 32767:
			widest = format.TypeInt32
		}
	}

	return widest, nil
}

func inferFloat(values []any) (format.PhysicalType, error) {
	eligible := true
	for _, v := range values {
		f, err := numericFloat64(v)
		if err != nil {
			return 0, err
		}

		if math.IsNaN(f) {
			return 0, fmt.Errorf("%w: NaN value", errs.ErrValueOutOfRange)
		}

		if eligible && !float16Eligible(f) {
			eligible = false
		}
	}

	if eligible {
		return format.TypeFloat16, nil
	}

	for _, v := range values {
		f, _ := numericFloat64(v)
		f32 := float32(f)
		if math.IsInf(float64(f32), 0) && !math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %v overflows float32", errs.ErrValueOutOfRange, v)
		}
	}

	return format.TypeFloat32, nil
}

// float16Eligible reports whether f can narrow to float16: its shortest
// exact decimal form uses at most 3 fractional digits, AND round-tripping
// through binary16 recovers it within ½ ULP.
func float16Eligible(f float64) bool {
	if fractionDigits(f) > maxFloat16FractionDigits {
		return false
	}

	bits, ok := float64ToFloat16Bits(f)
	if !ok {
		return false
	}

	back := float16BitsToFloat64(bits)
	diff := math.Abs(back - f)

	return diff <= float16ULP(f)/2
}

// fractionDigits returns the number of digits after the decimal point in
// f's shortest round-trip decimal representation.
func fractionDigits(f float64) int {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, "eE") {
		// Re-render in fixed notation so very small/large magnitudes still
		// get a meaningful fractional-digit count.
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}

	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}

	return len(s) - dot - 1
}

// Float32Eligible reports whether f is representable in IEEE 754 binary32
// without overflowing to infinity.
func Float32Eligible(f float64) bool {
	f32 := float32(f)

	return !math.IsInf(float64(f32), 0) || math.IsInf(f, 0)
}
