package typeinfer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonxfmt/jonx/format"
)

func num(s string) json.Number { return json.Number(s) }

func TestInferBool(t *testing.T) {
	typ, err := Infer([]any{true, false, true})
	require.NoError(t, err)
	require.Equal(t, format.TypeBool, typ)
}

func TestInferInt16(t *testing.T) {
	typ, err := Infer([]any{num("1"), num("2"), num("-32768"), num("32767")})
	require.NoError(t, err)
	require.Equal(t, format.TypeInt16, typ)
}

func TestInferInt32WidensOnOutOfRangeValue(t *testing.T) {
	typ, err := Infer([]any{num("100000"), num("-1")})
	require.NoError(t, err)
	require.Equal(t, format.TypeInt32, typ)
}

func TestInferIntegerOverflowIsError(t *testing.T) {
	_, err := Infer([]any{num("99999999999")})
	require.Error(t, err)
}

func TestInferFloat16(t *testing.T) {
	typ, err := Infer([]any{num("1.5"), num("2.25"), num("3.125")})
	require.NoError(t, err)
	require.Equal(t, format.TypeFloat16, typ)
}

func TestInferFloat32OnExcessPrecision(t *testing.T) {
	typ, err := Infer([]any{num("0.12345")})
	require.NoError(t, err)
	require.Equal(t, format.TypeFloat32, typ)
}

func TestInferBoolTakesPrecedenceOverNumeric(t *testing.T) {
	typ, err := Infer([]any{true, false})
	require.NoError(t, err)
	require.Equal(t, format.TypeBool, typ)
}

func TestInferStr(t *testing.T) {
	typ, err := Infer([]any{"Alice", "Bob"})
	require.NoError(t, err)
	require.Equal(t, format.TypeStr, typ)
}

func TestInferJSONOnMixedStringNumber(t *testing.T) {
	typ, err := Infer([]any{"Alice", num("1")})
	require.NoError(t, err)
	require.Equal(t, format.TypeJSON, typ)
}

func TestInferJSONOnNested(t *testing.T) {
	typ, err := Infer([]any{map[string]any{"a": num("1")}, []any{num("1"), num("2")}})
	require.NoError(t, err)
	require.Equal(t, format.TypeJSON, typ)
}

func TestInferAcceptsNativeIntAndInt64(t *testing.T) {
	typ, err := Infer([]any{int(1), int64(2), int64(32767)})
	require.NoError(t, err)
	require.Equal(t, format.TypeInt16, typ)
}

func TestInferAcceptsNativeFloat32AndFloat64(t *testing.T) {
	typ, err := Infer([]any{float64(1.5), float32(2.25)})
	require.NoError(t, err)
	require.Equal(t, format.TypeFloat16, typ)
}

func TestInferOnDecodedColumnMatchesOriginalInference(t *testing.T) {
	// Re-encoding a decoded numeric column must reproduce the same
	// PhysicalType: coldata.Decode hands back int64/float64, not
	// json.Number, so Infer must recognize those directly.
	typ, err := Infer([]any{int64(1), int64(2), int64(3)})
	require.NoError(t, err)
	require.Equal(t, format.TypeInt16, typ)

	typ, err = Infer([]any{float64(1.5), float64(2.25)})
	require.NoError(t, err)
	require.Equal(t, format.TypeFloat16, typ)
}

func TestFloat16BitsRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 1.5, 2.25, 3.125, 65504, -65504} {
		bits, ok := float64ToFloat16Bits(f)
		require.True(t, ok)
		require.InDelta(t, f, float16BitsToFloat64(bits), 1e-6)
	}
}
