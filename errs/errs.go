// Package errs centralizes the sentinel errors JONX's packages wrap with
// additional context via fmt.Errorf("%w: ...", errs.ErrXxx, ...). Callers
// use errors.Is(err, errs.ErrXxx) to classify a failure.
package errs

import "errors"

var (
	// ErrHeaderInvalid is returned when the magic bytes don't match 'JONX'
	// or the 8-byte header is truncated.
	ErrHeaderInvalid = errors.New("jonx: invalid header")

	// ErrUnsupportedVersion is returned when the header's version field is
	// not one this reader understands.
	ErrUnsupportedVersion = errors.New("jonx: unsupported version")

	// ErrFrameTruncated is returned when a frame's length prefix or payload
	// runs past the end of the available bytes.
	ErrFrameTruncated = errors.New("jonx: frame truncated")

	// ErrFrameCorrupt is returned when a frame's payload fails to
	// decompress.
	ErrFrameCorrupt = errors.New("jonx: frame corrupt")

	// ErrSchemaMalformed is returned when the schema frame's JSON is
	// missing fields/types, has a duplicate field name, or uses an
	// unrecognized type tag.
	ErrSchemaMalformed = errors.New("jonx: schema malformed")

	// ErrColumnLengthMismatch is returned when a fixed-width column's
	// plaintext length isn't exactly N * width.
	ErrColumnLengthMismatch = errors.New("jonx: column length mismatch")

	// ErrColumnDecodeError is returned when a str/json column's plaintext
	// fails to parse as a JSON array, or parses to the wrong element count.
	ErrColumnDecodeError = errors.New("jonx: column decode error")

	// ErrIndexInvalid is returned when a stored argsort index is not a
	// permutation of [0, N), or is not sorted with respect to its column.
	ErrIndexInvalid = errors.New("jonx: index invalid")

	// ErrNotNumeric is returned when a numeric-only operation
	// (find_min/find_max, sum/avg) is requested on a non-numeric column.
	ErrNotNumeric = errors.New("jonx: not a numeric column")

	// ErrUnknownField is returned when an operation references a field
	// absent from the schema.
	ErrUnknownField = errors.New("jonx: unknown field")

	// ErrValueOutOfRange is returned during encoding when a value exceeds
	// the domain of the narrowest available type for its column (e.g. an
	// integer outside int32, or a float that overflows float32, or a value
	// that produces NaN).
	ErrValueOutOfRange = errors.New("jonx: value out of range")

	// ErrMissingField is returned when a record is missing a field that
	// other records in the sequence declare (no null support, spec §3).
	ErrMissingField = errors.New("jonx: record missing field")

	// ErrEmptyColumn is returned when find_min/find_max is requested on a
	// column with zero rows; there is no extremum to return.
	ErrEmptyColumn = errors.New("jonx: column has no rows")
)
