package compress

// Compressor compresses a single frame's plaintext payload for JONX's
// framing primitive.
//
// The interface is intentionally narrow: frame payloads are fully-formed
// byte slices (a column's encoded values, a schema, an index), never a
// stream.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a frame payload previously produced by a
// Compressor.
//
// Thread Safety: implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result, or an error wrapping errs.ErrFrameCorrupt if the payload is
	// not valid compressed data.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}
