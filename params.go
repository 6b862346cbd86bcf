package saltbloom

import (
	"errors"
	"fmt"
	"math"
)

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014

	// MaxBitArraySize is the largest bit array a filter may allocate: 2^48
	// bits, or the largest uint on platforms where that is smaller.
	MaxBitArraySize = min(uint64(1)<<48, math.MaxUint)
)

// ErrInvalidParameter is returned when a filter cannot be sized from the
// supplied parameters.
var ErrInvalidParameter = errors.New("saltbloom: invalid parameter")

// BitArraySize returns the optimal number of bits for a filter holding
// expectedItems items at the target false positive rate:
//
//	m = ceil(-n * ln(p) / ln(2)^2)
//
// The result is always at least 1.
func BitArraySize(expectedItems uint64, fpRate float64) (uint64, error) {
	if expectedItems == 0 {
		return 0, fmt.Errorf("%w: expected item count must be positive", ErrInvalidParameter)
	}
	// Written as a negated range check so that NaN is rejected too.
	if !(fpRate > 0 && fpRate < 1) {
		return 0, fmt.Errorf("%w: false positive probability %v is not in (0, 1)", ErrInvalidParameter, fpRate)
	}

	bits := math.Ceil(-float64(expectedItems) * math.Log(fpRate) / ln2Squared)
	if math.IsInf(bits, 0) || bits > float64(MaxBitArraySize) {
		return 0, fmt.Errorf("%w: %d items at probability %v needs more than %d bits",
			ErrInvalidParameter, expectedItems, fpRate, MaxBitArraySize)
	}

	return max(uint64(bits), 1), nil
}

// HashCount returns the optimal number of hash probes for a filter of
// bitArraySize bits holding expectedItems items:
//
//	k = max(1, round(m / n * ln(2)))
//
// An expectedItems of zero yields 1.
func HashCount(bitArraySize, expectedItems uint64) uint32 {
	if expectedItems == 0 {
		return 1
	}

	k := math.Round(float64(bitArraySize) / float64(expectedItems) * ln2)
	if k >= math.MaxUint32 {
		return math.MaxUint32
	}

	return max(uint32(k), 1)
}

// OptimalParams calculates the bit array size and number of hash probes for
// the expected number of items and desired false positive rate.
func OptimalParams(expectedItems uint64, fpRate float64) (bitArraySize uint64, hashCount uint32, err error) {
	bitArraySize, err = BitArraySize(expectedItems, fpRate)
	if err != nil {
		return 0, 0, err
	}

	return bitArraySize, HashCount(bitArraySize, expectedItems), nil
}

// EstimateFalsePositiveRate estimates the false positive rate for given parameters.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(bitArraySize uint64, hashCount uint32, itemsAdded uint64) float64 {
	m := float64(bitArraySize)
	n := float64(itemsAdded)
	kf := float64(hashCount)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}
