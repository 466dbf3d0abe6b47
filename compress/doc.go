// Package compress provides the single compression codec behind every
// JONX frame.
//
// JONX's container fixes zstd as the framing compressor: the compressor
// uses zstd level 7 by default, and the reader accepts any zstd-compatible
// payload regardless of the level used to write it. Package compress
// exposes that as a Codec:
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// ZstdCompressor is built on github.com/klauspost/compress/zstd, the pure
// Go path, and pools its encoder/decoder via sync.Pool to avoid per-frame
// allocation. A cgo-backed implementation on github.com/valyala/gozstd is
// kept in zstd_cgo.go under a build tag that never activates.
package compress
