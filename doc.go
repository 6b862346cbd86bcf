// Package saltbloom provides a generic bloom filter for Go.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are possible,
// but false negatives are not – if the filter says an element is not present,
// it definitely is not. If it says an element might be present, it could be a
// false positive.
//
// # Hashing
//
// Rather than implementing k distinct hash functions, saltbloom derives all k
// probes from one seeded content hash: probe i uses the item's hash salted
// with (i+1) times 2^64/phi, and the bit position is that value modulo the
// bit array size.
// The built-in hashers ([StringHasher], [BytesHasher], [Uint64Hasher] and
// [HashableHasher]) use xxh3 with an explicit seed, so bit positions are the
// same on every platform and in every process.
//
// Any item type can be used by supplying a [Hasher]:
//
//	type point struct{ x, y int32 }
//
//	f, err := saltbloom.New[point](10_000, 0.01, func(seed uint64, p point) uint64 {
//		return saltbloom.Uint64Hasher(seed, uint64(uint32(p.x))<<32|uint64(uint32(p.y)))
//	})
//
// # Choosing Parameters
//
// Use [New] or one of its typed variants with your expected number of items
// and desired false positive rate:
//
//	// Filter for 1 million items with 1% false positive rate
//	f, err := saltbloom.NewString(1_000_000, 0.01)
//
// The bit array size m and probe count k are computed once by [OptimalParams]:
//
//	m = ceil(-n * ln(p) / ln(2)²)
//	k = max(1, round(m / n * ln(2)))
//
// and never change afterwards. A zero item count or a probability outside
// (0, 1) is rejected with [ErrInvalidParameter]. Adding more items than the
// filter was sized for is allowed; the real false positive rate simply rises
// above the target. Use [Filter.EstimatedFalsePositiveRate] to monitor it.
//
// # Thread Safety
//
// [Filter] is NOT thread-safe. Add needs exclusive access; Contains may be
// called from several goroutines at once as long as no Add is running.
//
// The calibrate subpackage measures how close a filter gets to its target
// rate on a real corpus.
package saltbloom
