package container

import (
	"fmt"

	"github.com/jonxfmt/jonx/endian"
	"github.com/jonxfmt/jonx/errs"
	"github.com/jonxfmt/jonx/format"
)

// HeaderSize is the fixed byte length of the file header: 4 bytes magic +
// 4 bytes little-endian version.
const HeaderSize = 8

// Header is the parsed form of a file's first 8 bytes.
type Header struct {
	Version uint32
}

func appendHeader(dst []byte) []byte {
	dst = append(dst, format.Magic[:]...)

	return endian.GetLittleEndianEngine().AppendUint32(dst, format.Version)
}

func readHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: file is %d bytes, need at least %d", errs.ErrHeaderInvalid, len(data), HeaderSize)
	}
	if data[0] != format.Magic[0] || data[1] != format.Magic[1] || data[2] != format.Magic[2] || data[3] != format.Magic[3] {
		return Header{}, fmt.Errorf("%w: bad magic bytes", errs.ErrHeaderInvalid)
	}

	version := endian.GetLittleEndianEngine().Uint32(data[4:8])
	if version != format.Version {
		return Header{}, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	return Header{Version: version}, nil
}
