package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of data. Used for fingerprinting byte blocks
// (e.g. a parsed schema frame's plaintext) rather than string identifiers.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
