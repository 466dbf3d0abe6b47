// Package frame implements JONX's framing primitive: the only persistent
// storage unit in a JONX file.
//
// A frame is `u32_le length || zstd_compressed_payload`. The length field
// counts the compressed bytes that follow; it does not include itself.
// Every persistent block in a JONX file (the schema, each column, each
// index) is one frame.
package frame

import (
	"fmt"

	"github.com/jonxfmt/jonx/compress"
	"github.com/jonxfmt/jonx/endian"
	"github.com/jonxfmt/jonx/errs"
)

// LengthPrefixSize is the width, in bytes, of a frame's length prefix.
const LengthPrefixSize = 4

// Write compresses plaintext with codec and appends the length-prefixed
// frame to dst, returning the grown slice.
func Write(dst []byte, plaintext []byte, codec compress.Codec) ([]byte, error) {
	compressed, err := codec.Compress(plaintext)
	if err != nil {
		return nil, fmt.Errorf("jonx: compress frame: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	dst = engine.AppendUint32(dst, uint32(len(compressed))) //nolint:gosec
	dst = append(dst, compressed...)

	return dst, nil
}

// Read reads one frame starting at offset in src: a 4-byte little-endian
// length followed by that many compressed bytes. It returns the
// decompressed plaintext, the byte offset of the next frame, and an error
// wrapping errs.ErrFrameTruncated if src ends mid-length or mid-payload, or
// errs.ErrFrameCorrupt if the payload fails to decompress.
func Read(src []byte, offset int, codec compress.Codec) (plaintext []byte, next int, err error) {
	if offset < 0 || offset+LengthPrefixSize > len(src) {
		return nil, 0, fmt.Errorf("%w: frame length prefix at offset %d", errs.ErrFrameTruncated, offset)
	}

	engine := endian.GetLittleEndianEngine()
	length := int(engine.Uint32(src[offset : offset+LengthPrefixSize]))

	payloadStart := offset + LengthPrefixSize
	payloadEnd := payloadStart + length
	if length < 0 || payloadEnd > len(src) {
		return nil, 0, fmt.Errorf("%w: frame payload at offset %d wants %d bytes", errs.ErrFrameTruncated, payloadStart, length)
	}

	plaintext, err = codec.Decompress(src[payloadStart:payloadEnd])
	if err != nil {
		return nil, 0, err
	}

	return plaintext, payloadEnd, nil
}

// Region locates one frame's compressed payload without decompressing it,
// returning its (offset, length) and the offset of the byte immediately
// following the frame. Used by the container's lazy directory walk (spec
// section 4.5) to record column/index locations without materializing
// them.
func Region(src []byte, offset int) (payloadOffset, payloadLength, next int, err error) {
	if offset < 0 || offset+LengthPrefixSize > len(src) {
		return 0, 0, 0, fmt.Errorf("%w: frame length prefix at offset %d", errs.ErrFrameTruncated, offset)
	}

	engine := endian.GetLittleEndianEngine()
	length := int(engine.Uint32(src[offset : offset+LengthPrefixSize]))

	payloadStart := offset + LengthPrefixSize
	payloadEnd := payloadStart + length
	if length < 0 || payloadEnd > len(src) {
		return 0, 0, 0, fmt.Errorf("%w: frame payload at offset %d wants %d bytes", errs.ErrFrameTruncated, payloadStart, length)
	}

	return payloadStart, length, payloadEnd, nil
}

// ReadRegion decompresses the frame payload previously located by Region.
func ReadRegion(src []byte, payloadOffset, payloadLength int, codec compress.Codec) ([]byte, error) {
	if payloadOffset < 0 || payloadOffset+payloadLength > len(src) {
		return nil, fmt.Errorf("%w: frame region [%d:%d]", errs.ErrFrameTruncated, payloadOffset, payloadOffset+payloadLength)
	}

	return codec.Decompress(src[payloadOffset : payloadOffset+payloadLength])
}
