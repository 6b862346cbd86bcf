package benchmarks

import (
	"fmt"
	"strconv"
	"testing"

	bab "github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	atomicbloom "github.com/ericvolp12/atomic-bloom"
	"github.com/greatroar/blobloom"
	"github.com/spaolacci/murmur3"

	"github.com/jcalabro/saltbloom"
)

const (
	benchItems  = 1_000_000
	benchFPRate = 0.01
)

// Pre-generate test data to avoid measuring string generation
var testKeys [][]byte
var testKeysStr []string

func init() {
	testKeys = make([][]byte, benchItems)
	testKeysStr = make([]string, benchItems)
	for i := range benchItems {
		s := fmt.Sprintf("key-%d", i)
		testKeys[i] = []byte(s)
		testKeysStr[i] = s
	}
}

// murmurHasher salts murmur3 with the low 32 bits of the seed, for
// comparison with the built-in xxh3 hashers.
func murmurHasher(seed uint64, data []byte) uint64 {
	return murmur3.Sum64WithSeed(data, uint32(seed))
}

func newString(b *testing.B, items uint64, fpRate float64) *saltbloom.Filter[string] {
	f, err := saltbloom.NewString(items, fpRate)
	if err != nil {
		b.Fatal(err)
	}
	return f
}

func newBytes(b *testing.B, hash saltbloom.Hasher[[]byte]) *saltbloom.Filter[[]byte] {
	f, err := saltbloom.New[[]byte](benchItems, benchFPRate, hash)
	if err != nil {
		b.Fatal(err)
	}
	return f
}

// ============================================================================
// Sequential Add Benchmarks
// ============================================================================

func BenchmarkAddSequential_Salt(b *testing.B) {
	f := newBytes(b, saltbloom.BytesHasher)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_SaltString(b *testing.B) {
	f := newString(b, benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddSequential_SaltMurmur(b *testing.B) {
	f := newBytes(b, murmurHasher)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	b.ResetTimer()
	for i := range b.N {
		// blobloom requires pre-hashing
		h := xxhash.Sum64(testKeys[i%benchItems])
		f.Add(h)
	}
}

// ============================================================================
// Sequential Contains Benchmarks
// ============================================================================

func BenchmarkContainsSequential_Salt(b *testing.B) {
	f := newBytes(b, saltbloom.BytesHasher)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Contains(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_SaltString(b *testing.B) {
	f := newString(b, benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeysStr[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Contains(testKeysStr[i%benchItems])
	}
}

func BenchmarkContainsSequential_SaltMurmur(b *testing.B) {
	f := newBytes(b, murmurHasher)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Contains(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	// Pre-hash keys for fair comparison
	hashes := make([]uint64, benchItems)
	for i := range benchItems {
		hashes[i] = xxhash.Sum64(testKeys[i])
		f.Add(hashes[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Has(hashes[i%benchItems])
	}
}

// ============================================================================
// Parallel Contains Benchmarks (readers only, no Add in flight)
// ============================================================================

func BenchmarkContainsParallel_SaltString(b *testing.B) {
	f := newString(b, benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeysStr[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Contains(testKeysStr[i%benchItems])
			i++
		}
	})
}

func BenchmarkContainsParallel_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Test(testKeys[i%benchItems])
			i++
		}
	})
}

// ============================================================================
// Capacity Sweep (lookup cost as the filter grows)
// ============================================================================

func BenchmarkContainsBySize(b *testing.B) {
	for _, size := range []uint64{1_000, 100_000, 10_000_000} {
		b.Run(strconv.FormatUint(size, 10), func(b *testing.B) {
			f := newString(b, size, 0.1)
			for i := range 1000 {
				f.Add(strconv.Itoa(i))
			}
			b.ResetTimer()
			for i := range b.N {
				f.Contains(testKeysStr[i%benchItems])
			}
			b.ReportMetric(float64(f.Cap())/8, "filter-bytes")
		})
	}
}

// ============================================================================
// Allocation Benchmarks
// ============================================================================

func BenchmarkAddAlloc_SaltString(b *testing.B) {
	f := newString(b, benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddAlloc_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}
