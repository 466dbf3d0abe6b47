// Package coldata encodes and decodes one column's values into/from a
// typed, fixed or variable width byte block (the plaintext of one frame,
// before framing/compression).
//
// Fixed-width layouts use a little-endian, loop-over-values shape. The
// str/json layouts store a JSON-encoded array of N values. See DESIGN.md.
package coldata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/jonxfmt/jonx/endian"
	"github.com/jonxfmt/jonx/errs"
	"github.com/jonxfmt/jonx/format"
	"github.com/jonxfmt/jonx/internal/pool"
	"github.com/jonxfmt/jonx/typeinfer"
)

// Encode serializes N values into the plaintext layout for typ. values
// must have exactly N elements in row order.
func Encode(values []any, typ format.PhysicalType) ([]byte, error) {
	switch typ {
	case format.TypeInt16:
		return encodeInt16(values)
	case format.TypeInt32:
		return encodeInt32(values)
	case format.TypeFloat16:
		return encodeFloat16(values)
	case format.TypeFloat32:
		return encodeFloat32(values)
	case format.TypeBool:
		return encodeBool(values)
	case format.TypeStr:
		return encodeStr(values)
	case format.TypeJSON:
		return encodeJSON(values)
	default:
		return nil, fmt.Errorf("%w: unknown physical type %v", errs.ErrSchemaMalformed, typ)
	}
}

// Decode parses a column's plaintext (as produced by Encode) back into N
// values, given the declared type and row count.
func Decode(plaintext []byte, typ format.PhysicalType, n int) ([]any, error) {
	switch typ {
	case format.TypeInt16:
		return decodeInt16(plaintext, n)
	case format.TypeInt32:
		return decodeInt32(plaintext, n)
	case format.TypeFloat16:
		return decodeFloat16(plaintext, n)
	case format.TypeFloat32:
		return decodeFloat32(plaintext, n)
	case format.TypeBool:
		return decodeBool(plaintext, n)
	case format.TypeStr:
		return decodeStr(plaintext, n)
	case format.TypeJSON:
		return decodeJSON(plaintext, n)
	default:
		return nil, fmt.Errorf("%w: unknown physical type %v", errs.ErrSchemaMalformed, typ)
	}
}

func encodeInt16(values []any) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(values)*format.TypeInt16.Width())

	for i, v := range values {
		n, ok := asInt64(v)
		if !ok {
			return nil, typeMismatchError(i, "int16", v)
		}
		if n < -32768 || n > 32767 {
			return nil, fmt.Errorf("%w: %d at row %d exceeds int16 range", errs.ErrValueOutOfRange, n, i)
		}

		buf = engine.AppendUint16(buf, uint16(int16(n))) //nolint:gosec
	}

	return buf, nil
}

func decodeInt16(plaintext []byte, n int) ([]any, error) {
	width := format.TypeInt16.Width()
	if len(plaintext) != n*width {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", errs.ErrColumnLengthMismatch, n*width, len(plaintext))
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]any, n)
	for i := range n {
		u := engine.Uint16(plaintext[i*width : i*width+width])
		out[i] = int64(int16(u)) //nolint:gosec
	}

	return out, nil
}

func encodeInt32(values []any) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(values)*format.TypeInt32.Width())

	for i, v := range values {
		n, ok := asInt64(v)
		if !ok {
			return nil, typeMismatchError(i, "int32", v)
		}
		if n < -2147483648 || n > 2147483647 {
			return nil, fmt.Errorf("%w: %d at row %d exceeds int32 range", errs.ErrValueOutOfRange, n, i)
		}

		buf = engine.AppendUint32(buf, uint32(int32(n))) //nolint:gosec
	}

	return buf, nil
}

func decodeInt32(plaintext []byte, n int) ([]any, error) {
	width := format.TypeInt32.Width()
	if len(plaintext) != n*width {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", errs.ErrColumnLengthMismatch, n*width, len(plaintext))
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]any, n)
	for i := range n {
		u := engine.Uint32(plaintext[i*width : i*width+width])
		out[i] = int64(int32(u)) //nolint:gosec
	}

	return out, nil
}

func encodeFloat16(values []any) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(values)*format.TypeFloat16.Width())

	for i, v := range values {
		f, ok := asFloat64(v)
		if !ok {
			return nil, typeMismatchError(i, "float16", v)
		}

		bits, ok := typeinfer.Float64ToFloat16(f)
		if !ok {
			return nil, fmt.Errorf("%w: %v at row %d overflows float16", errs.ErrValueOutOfRange, f, i)
		}

		buf = engine.AppendUint16(buf, bits)
	}

	return buf, nil
}

func decodeFloat16(plaintext []byte, n int) ([]any, error) {
	width := format.TypeFloat16.Width()
	if len(plaintext) != n*width {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", errs.ErrColumnLengthMismatch, n*width, len(plaintext))
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]any, n)
	for i := range n {
		bits := engine.Uint16(plaintext[i*width : i*width+width])
		out[i] = typeinfer.Float16ToFloat64(bits)
	}

	return out, nil
}

func encodeFloat32(values []any) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(values)*format.TypeFloat32.Width())

	for i, v := range values {
		f, ok := asFloat64(v)
		if !ok {
			return nil, typeMismatchError(i, "float32", v)
		}
		if !typeinfer.Float32Eligible(f) {
			return nil, fmt.Errorf("%w: %v at row %d overflows float32", errs.ErrValueOutOfRange, f, i)
		}

		buf = engine.AppendUint32(buf, math.Float32bits(float32(f)))
	}

	return buf, nil
}

func decodeFloat32(plaintext []byte, n int) ([]any, error) {
	width := format.TypeFloat32.Width()
	if len(plaintext) != n*width {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", errs.ErrColumnLengthMismatch, n*width, len(plaintext))
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]any, n)
	for i := range n {
		u := engine.Uint32(plaintext[i*width : i*width+width])
		out[i] = float64(math.Float32frombits(u))
	}

	return out, nil
}

func encodeBool(values []any) ([]byte, error) {
	buf := make([]byte, len(values))
	for i, v := range values {
		b, ok := asBool(v)
		if !ok {
			return nil, typeMismatchError(i, "bool", v)
		}
		if b {
			buf[i] = 0x01
		}
	}

	return buf, nil
}

func decodeBool(plaintext []byte, n int) ([]any, error) {
	if len(plaintext) != n {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", errs.ErrColumnLengthMismatch, n, len(plaintext))
	}

	out := make([]any, n)
	for i, b := range plaintext {
		out[i] = b != 0x00
	}

	return out, nil
}

func encodeStr(values []any) ([]byte, error) {
	strs, cleanup := pool.GetStringSlice(len(values))
	defer cleanup()

	for i, v := range values {
		s, ok := asString(v)
		if !ok {
			return nil, typeMismatchError(i, "str", v)
		}
		strs[i] = s
	}

	return json.Marshal(strs)
}

func decodeStr(plaintext []byte, n int) ([]any, error) {
	var strs []string
	if err := json.Unmarshal(plaintext, &strs); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrColumnDecodeError, err)
	}
	if len(strs) != n {
		return nil, fmt.Errorf("%w: want %d elements, got %d", errs.ErrColumnDecodeError, n, len(strs))
	}

	out := make([]any, n)
	for i, s := range strs {
		out[i] = s
	}

	return out, nil
}

func encodeJSON(values []any) ([]byte, error) {
	return json.Marshal(values)
}

func decodeJSON(plaintext []byte, n int) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(plaintext))
	dec.UseNumber()

	var values []any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrColumnDecodeError, err)
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: want %d elements, got %d", errs.ErrColumnDecodeError, n, len(values))
	}

	return values, nil
}
