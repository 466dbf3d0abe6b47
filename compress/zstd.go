package compress

// ZstdCompressor is the codec behind every JONX frame.
//
// It targets the zstd level 7 default via zstd.SpeedBetterCompression,
// trading some compression speed for a better ratio on columnar data that
// is typically repetitive (sorted-ish numeric columns, low-cardinality
// strings).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
