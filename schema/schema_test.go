package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonxfmt/jonx/format"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	s, err := New(
		[]string{"id", "name", "score"},
		map[string]format.PhysicalType{
			"id":    format.TypeInt32,
			"name":  format.TypeStr,
			"score": format.TypeFloat32,
		},
		3,
	)
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{"fields":["id","name","score"],"types":{"id":"int32","name":"str","score":"float32"},"num_rows":3}`, string(data))

	var decoded Schema
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, s.Fields, decoded.Fields)
	require.Equal(t, s.Types, decoded.Types)
	require.Equal(t, s.NumRows, decoded.NumRows)
}

func TestNewRejectsDuplicateField(t *testing.T) {
	_, err := New(
		[]string{"id", "id"},
		map[string]format.PhysicalType{"id": format.TypeInt16},
		2,
	)
	require.Error(t, err)
}

func TestNewRejectsMissingType(t *testing.T) {
	_, err := New(
		[]string{"id", "name"},
		map[string]format.PhysicalType{"id": format.TypeInt16},
		2,
	)
	require.Error(t, err)
}

func TestUnmarshalRejectsUnknownTypeTag(t *testing.T) {
	var s Schema
	err := json.Unmarshal([]byte(`{"fields":["id"],"types":{"id":"decimal"},"num_rows":1}`), &s)
	require.Error(t, err)
}

func TestFieldIndexAndHasField(t *testing.T) {
	s, err := New(
		[]string{"a", "b"},
		map[string]format.PhysicalType{"a": format.TypeBool, "b": format.TypeBool},
		0,
	)
	require.NoError(t, err)
	require.True(t, s.HasField("a"))
	require.False(t, s.HasField("z"))
	require.Equal(t, 0, s.FieldIndex("a"))
	require.Equal(t, 1, s.FieldIndex("b"))
	require.Equal(t, -1, s.FieldIndex("z"))
}
