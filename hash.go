package saltbloom

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Hasher computes a 64-bit content hash of item salted with seed.
//
// A filter derives its k probes from a single Hasher by passing a seed
// derived from each probe index 0..k-1. Those seeds differ in their high
// bits as well as their low bits, and for a fixed item the values for
// different seeds must behave like independent uniform draws. Equal items must hash
// identically for every seed.
type Hasher[T any] func(seed uint64, item T) uint64

// Hashable is implemented by item types that can produce a canonical byte
// key for themselves. Items that are equal must return equal keys.
type Hashable interface {
	HashKey() []byte
}

// StringHasher hashes a string with xxh3 without allocating.
func StringHasher(seed uint64, s string) uint64 {
	return xxh3.HashStringSeed(s, seed)
}

// BytesHasher hashes a byte slice with xxh3.
func BytesHasher(seed uint64, data []byte) uint64 {
	return xxh3.HashSeed(data, seed)
}

// Uint64Hasher hashes the little-endian encoding of v with xxh3.
func Uint64Hasher(seed uint64, v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxh3.HashSeed(buf[:], seed)
}

// HashableHasher hashes the key returned by item.HashKey with xxh3.
// Used directly as a filter's Hasher it rebuilds the key for every probe;
// NewHashable builds the key once per operation instead.
func HashableHasher[T Hashable](seed uint64, item T) uint64 {
	return xxh3.HashSeed(item.HashKey(), seed)
}
