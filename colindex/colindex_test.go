package colindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildIsValidSortedPermutation(t *testing.T) {
	values := []any{int64(5), int64(1), int64(3), int64(1), int64(9)}
	perm, err := Build(values)
	require.NoError(t, err)
	require.Len(t, perm, len(values))

	require.NoError(t, Validate(perm, values))

	require.Equal(t, int64(1), values[Min(perm)])
	require.Equal(t, int64(9), values[Max(perm)])
}

func TestBuildStableOnTies(t *testing.T) {
	values := []any{int64(1), int64(1), int64(0)}
	perm, err := Build(values)
	require.NoError(t, err)
	// Row 2 (value 0) sorts first; among the tied 1s, original order (0, 1) is preserved.
	require.Equal(t, []uint32{2, 0, 1}, perm)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	perm := []uint32{2, 0, 1, 3}
	plaintext := Encode(perm)
	decoded, err := Decode(plaintext, len(perm))
	require.NoError(t, err)
	require.Equal(t, perm, decoded)
}

func TestValidateRejectsNonPermutation(t *testing.T) {
	values := []any{int64(1), int64(2)}
	err := Validate([]uint32{0, 0}, values)
	require.Error(t, err)
}

func TestValidateRejectsUnsortedIndex(t *testing.T) {
	values := []any{int64(5), int64(1)}
	err := Validate([]uint32{0, 1}, values)
	require.Error(t, err)
}
