package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZstdCompressorRoundTrip(t *testing.T) {
	c := NewZstdCompressor()

	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("hello jonx"),
		make([]byte, 4096),
	}

	for _, data := range cases {
		compressed, err := c.Compress(data)
		require.NoError(t, err)

		decompressed, err := c.Decompress(compressed)
		require.NoError(t, err)
		require.True(t, bytes.Equal(data, decompressed))
	}
}

func TestZstdCompressorRejectsCorruptData(t *testing.T) {
	c := NewZstdCompressor()

	_, err := c.Decompress([]byte{0xff, 0xff, 0xff, 0xff})
	require.Error(t, err)
}
