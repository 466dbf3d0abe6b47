package jonx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonxfmt/jonx/container"
)

func TestEncodeRecordsAndOpenRoundTrip(t *testing.T) {
	records, err := container.DecodeRecordsJSON([]byte(`[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]`))
	require.NoError(t, err)

	data, err := EncodeRecords(records)
	require.NoError(t, err)

	reader, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, uint32(2), reader.Count())

	name, err := reader.GetColumn("name")
	require.NoError(t, err)
	require.Equal(t, []any{"Alice", "Bob"}, name)
}

func TestDecodeBytesMaterializesPerRowRecords(t *testing.T) {
	records, err := container.DecodeRecordsJSON([]byte(`[{"x":1,"y":true},{"x":2,"y":false}]`))
	require.NoError(t, err)

	data, err := EncodeRecords(records)
	require.NoError(t, err)

	reader, decoded, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, uint32(2), reader.Count())
	require.Len(t, decoded, 2)

	x0, ok := decoded[0].Get("x")
	require.True(t, ok)
	require.Equal(t, int64(1), x0)

	y1, ok := decoded[1].Get("y")
	require.True(t, ok)
	require.Equal(t, false, y1)
}
