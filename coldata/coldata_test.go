package coldata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonxfmt/jonx/format"
)

func TestInt16RoundTrip(t *testing.T) {
	values := []any{int64(1), int64(-2), int64(32767), int64(-32768)}
	plaintext, err := Encode(values, format.TypeInt16)
	require.NoError(t, err)
	require.Len(t, plaintext, len(values)*2)

	decoded, err := Decode(plaintext, format.TypeInt16, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestInt32RoundTrip(t *testing.T) {
	values := []any{int64(100000), int64(-1)}
	plaintext, err := Encode(values, format.TypeInt32)
	require.NoError(t, err)

	decoded, err := Decode(plaintext, format.TypeInt32, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestInt16OutOfRangeIsError(t *testing.T) {
	_, err := Encode([]any{int64(40000)}, format.TypeInt16)
	require.Error(t, err)
}

func TestFloat16RoundTrip(t *testing.T) {
	values := []any{float64(1.5), float64(2.25), float64(3.125)}
	plaintext, err := Encode(values, format.TypeFloat16)
	require.NoError(t, err)

	decoded, err := Decode(plaintext, format.TypeFloat16, len(values))
	require.NoError(t, err)
	for i, v := range decoded {
		require.InDelta(t, values[i], v, 1e-9)
	}
}

func TestFloat32RoundTrip(t *testing.T) {
	values := []any{0.12345, -123.456}
	plaintext, err := Encode(values, format.TypeFloat32)
	require.NoError(t, err)

	decoded, err := Decode(plaintext, format.TypeFloat32, len(values))
	require.NoError(t, err)
	for i, v := range decoded {
		require.InDelta(t, values[i], v, 1e-4)
	}
}

func TestBoolRoundTrip(t *testing.T) {
	values := []any{true, false, true}
	plaintext, err := Encode(values, format.TypeBool)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0x01}, plaintext)

	decoded, err := Decode(plaintext, format.TypeBool, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestStrRoundTrip(t *testing.T) {
	values := []any{"Alice", "Bob"}
	plaintext, err := Encode(values, format.TypeStr)
	require.NoError(t, err)
	require.JSONEq(t, `["Alice","Bob"]`, string(plaintext))

	decoded, err := Decode(plaintext, format.TypeStr, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestJSONRoundTrip(t *testing.T) {
	values := []any{
		map[string]any{"a": json.Number("1")},
		[]any{json.Number("1"), json.Number("2")},
	}
	plaintext, err := Encode(values, format.TypeJSON)
	require.NoError(t, err)

	decoded, err := Decode(plaintext, format.TypeJSON, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestColumnLengthMismatch(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x02, 0x03}, format.TypeInt16, 2)
	require.Error(t, err)
}

func TestStrDecodeWrongElementCount(t *testing.T) {
	_, err := Decode([]byte(`["a"]`), format.TypeStr, 2)
	require.Error(t, err)
}
