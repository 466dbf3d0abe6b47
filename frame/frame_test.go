package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonxfmt/jonx/compress"
)

func TestWriteReadRoundTrip(t *testing.T) {
	codec := compress.NewZstdCompressor()

	var buf []byte
	buf, err := Write(buf, []byte("hello"), codec)
	require.NoError(t, err)

	buf, err = Write(buf, []byte("world!!"), codec)
	require.NoError(t, err)

	plain1, next, err := Read(buf, 0, codec)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), plain1)

	plain2, next2, err := Read(buf, next, codec)
	require.NoError(t, err)
	require.Equal(t, []byte("world!!"), plain2)
	require.Equal(t, len(buf), next2)
}

func TestReadTruncated(t *testing.T) {
	codec := compress.NewZstdCompressor()

	_, _, err := Read([]byte{0x01, 0x00}, 0, codec)
	require.Error(t, err)

	var buf []byte
	buf, err = Write(buf, []byte("data"), codec)
	require.NoError(t, err)

	_, _, err = Read(buf[:len(buf)-1], 0, codec)
	require.Error(t, err)
}

func TestRegionAndReadRegion(t *testing.T) {
	codec := compress.NewZstdCompressor()

	var buf []byte
	buf, err := Write(buf, []byte("payload-one"), codec)
	require.NoError(t, err)

	off, length, next, err := Region(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(buf), next)

	plain, err := ReadRegion(buf, off, length, codec)
	require.NoError(t, err)
	require.Equal(t, []byte("payload-one"), plain)
}
