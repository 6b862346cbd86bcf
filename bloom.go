package saltbloom

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Filter is a bloom filter over items of type T.
//
// Each item is mapped to k bit positions by salting a single content hash
// with a seed derived from the probe index: position i is
// hash(seedFor(i), item) mod m. Bits are only
// ever set, never cleared, so an item that was added is always reported as
// present.
//
// Filter is not safe for concurrent use. Add needs exclusive access;
// Contains may be shared between readers while no Add is in flight.
type Filter[T any] struct {
	bits   *bitset.BitSet
	m      uint64    // bit array size
	k      uint32    // probes per operation
	fpRate float64   // target false positive rate, kept for reference
	hash   Hasher[T] // seeded content hash
	count  uint64    // number of Add calls

	// keyOf, when set, extracts a byte key once per operation; probes then
	// hash the key instead of calling hash with the item.
	keyOf func(T) []byte
}

// seedSpread is 2^64 divided by the golden ratio. Multiplying a hash
// index by it moves consecutive seeds far apart in every bit.
const seedSpread = 0x9E3779B97F4A7C15

// seedFor returns the xxh3 seed of the i-th hash. xxh3 folds the seed into
// inputs of 1 to 3 bytes with a single add, so seeds 0, 1, 2 would leave
// short keys with nearly identical bit positions.
func seedFor(i uint32) uint64 {
	return (uint64(i) + 1) * seedSpread
}

// New creates a bloom filter sized for the expected number of items and
// desired false positive rate, hashing items with hash.
//
// It returns an error wrapping ErrInvalidParameter if expectedItems is zero
// or fpRate is not strictly between 0 and 1.
func New[T any](expectedItems uint64, fpRate float64, hash Hasher[T]) (*Filter[T], error) {
	m, k, err := OptimalParams(expectedItems, fpRate)
	if err != nil {
		return nil, err
	}

	f, err := NewWithParams[T](m, k, hash)
	if err != nil {
		return nil, err
	}
	f.fpRate = fpRate

	return f, nil
}

// NewString creates a bloom filter for string items.
func NewString(expectedItems uint64, fpRate float64) (*Filter[string], error) {
	return New[string](expectedItems, fpRate, StringHasher)
}

// NewBytes creates a bloom filter for byte slice items.
func NewBytes(expectedItems uint64, fpRate float64) (*Filter[[]byte], error) {
	return New[[]byte](expectedItems, fpRate, BytesHasher)
}

// NewHashable creates a bloom filter for any item type that implements Hashable.
// HashKey is called once per Add or Contains, not once per probe.
func NewHashable[T Hashable](expectedItems uint64, fpRate float64) (*Filter[T], error) {
	f, err := New[T](expectedItems, fpRate, HashableHasher[T])
	if err != nil {
		return nil, err
	}
	f.keyOf = func(item T) []byte { return item.HashKey() }

	return f, nil
}

// NewWithParams creates a bloom filter with explicit parameters.
// bitArraySize is the number of bits, hashCount the number of probes.
func NewWithParams[T any](bitArraySize uint64, hashCount uint32, hash Hasher[T]) (*Filter[T], error) {
	if bitArraySize == 0 || bitArraySize > MaxBitArraySize {
		return nil, fmt.Errorf("%w: bit array size %d is not in [1, %d]", ErrInvalidParameter, bitArraySize, MaxBitArraySize)
	}
	if hashCount == 0 {
		return nil, fmt.Errorf("%w: hash count must be positive", ErrInvalidParameter)
	}
	if hash == nil {
		return nil, fmt.Errorf("%w: nil hasher", ErrInvalidParameter)
	}

	return &Filter[T]{
		bits: bitset.New(uint(bitArraySize)),
		m:    bitArraySize,
		k:    hashCount,
		hash: hash,
	}, nil
}

// index returns the bit position for the given probe. key is only read
// when the filter has a keyOf extractor.
func (f *Filter[T]) index(probe uint32, item T, key []byte) uint {
	seed := seedFor(probe)
	if f.keyOf != nil {
		return uint(BytesHasher(seed, key) % f.m)
	}
	return uint(f.hash(seed, item) % f.m)
}

func (f *Filter[T]) key(item T) []byte {
	if f.keyOf == nil {
		return nil
	}
	return f.keyOf(item)
}

// Add adds item to the bloom filter. Adding the same item more than once
// leaves the bits unchanged.
func (f *Filter[T]) Add(item T) {
	key := f.key(item)
	for i := uint32(0); i < f.k; i++ {
		f.bits.Set(f.index(i, item, key))
	}

	f.count++
}

// Contains checks if item might be in the bloom filter.
// Returns true if the item might be present (with false positive probability),
// or false if the item is definitely not present.
func (f *Filter[T]) Contains(item T) bool {
	key := f.key(item)
	for i := uint32(0); i < f.k; i++ {
		if !f.bits.Test(f.index(i, item, key)) {
			return false
		}
	}

	return true
}

// Cap returns the size of the bit array.
func (f *Filter[T]) Cap() uint64 {
	return f.m
}

// K returns the number of hash probes per operation.
func (f *Filter[T]) K() uint32 {
	return f.k
}

// Count returns the number of Add calls, duplicates included.
func (f *Filter[T]) Count() uint64 {
	return f.count
}

// TargetFalsePositiveRate returns the false positive rate the filter was
// sized for, or 0 if it was built with NewWithParams.
func (f *Filter[T]) TargetFalsePositiveRate() float64 {
	return f.fpRate
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter[T]) EstimatedFillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.m)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter[T]) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.m, f.k, f.count)
}
