// Package colindex implements the argsort permutation index stored for
// every numeric column, enabling O(1) find_min/find_max.
//
// Storing the permutation rather than the sorted values keeps extremum
// retrieval O(1) while leaving room for future operations (top-k, sorted
// scans) without a format change. See DESIGN.md.
package colindex

import (
	"fmt"
	"sort"

	"github.com/jonxfmt/jonx/endian"
	"github.com/jonxfmt/jonx/errs"
	"github.com/jonxfmt/jonx/internal/pool"
)

// Key extracts the sortable numeric value for row i of a numeric column.
// Column decode (package coldata) produces int64 for int16/int32 columns
// and float64 for float16/float32 columns; Key normalizes both to float64
// for comparison.
func Key(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Build computes the argsort permutation pi of [0, N) such that
// values[pi(i)] is non-decreasing, stable on ties.
func Build(values []any) ([]uint32, error) {
	n := len(values)
	keys, cleanup := pool.GetFloat64Slice(n)
	defer cleanup()
	for i, v := range values {
		k, ok := Key(v)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is not numeric", errs.ErrNotNumeric, i)
		}
		keys[i] = k
	}

	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i) //nolint:gosec
	}

	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[a]] < keys[perm[b]]
	})

	return perm, nil
}

// Encode serializes a permutation into its plaintext layout: N x
// little-endian u32 row indices.
func Encode(perm []uint32) []byte {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(perm)*4)
	for _, p := range perm {
		buf = engine.AppendUint32(buf, p)
	}

	return buf
}

// Decode parses a permutation from its plaintext layout.
func Decode(plaintext []byte, n int) ([]uint32, error) {
	if len(plaintext) != n*4 {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", errs.ErrIndexInvalid, n*4, len(plaintext))
	}

	engine := endian.GetLittleEndianEngine()
	perm := make([]uint32, n)
	for i := range n {
		perm[i] = engine.Uint32(plaintext[i*4 : i*4+4])
	}

	return perm, nil
}

// Validate reports whether perm is a valid permutation of [0, N) and is
// correctly ordered with respect to values. Used by container.Reader.Validate.
func Validate(perm []uint32, values []any) error {
	n := len(values)
	if len(perm) != n {
		return fmt.Errorf("%w: permutation length %d does not match column length %d", errs.ErrIndexInvalid, len(perm), n)
	}

	seen := make([]bool, n)
	for _, p := range perm {
		if int(p) >= n || seen[p] {
			return fmt.Errorf("%w: not a permutation of [0, %d)", errs.ErrIndexInvalid, n)
		}
		seen[p] = true
	}

	var prev float64
	for i, p := range perm {
		k, ok := Key(values[p])
		if !ok {
			return fmt.Errorf("%w: row %d is not numeric", errs.ErrNotNumeric, p)
		}
		if i > 0 && k < prev {
			return fmt.Errorf("%w: column not sorted at index %d of permutation", errs.ErrIndexInvalid, i)
		}
		prev = k
	}

	return nil
}

// Min returns the minimum value's row index (pi(0)) given perm.
func Min(perm []uint32) uint32 { return perm[0] }

// Max returns the maximum value's row index (pi(N-1)) given perm.
func Max(perm []uint32) uint32 { return perm[len(perm)-1] }
