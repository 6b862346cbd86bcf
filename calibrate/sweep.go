package calibrate

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jcalabro/saltbloom"
)

const (
	// DefaultSweepFalsePositiveRate is the target rate of every sweep filter.
	DefaultSweepFalsePositiveRate = 0.1

	// sweepInserted keys "0".."999" are added to every sweep filter.
	sweepInserted = 1000
	// sweepProbes keys starting at sweepProbeOffset are timed; half were added.
	sweepProbes      = 1000
	sweepProbeOffset = 500
)

// DefaultSweepSizes are the filter capacities timed by Sweep.
var DefaultSweepSizes = []uint64{
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
}

// SweepResult is the lookup timing for one filter capacity.
type SweepResult struct {
	Size    uint64
	Elapsed time.Duration
	Hits    int
}

// Sweep builds one filter per size at fpRate, adds the same 1000 keys to
// each, and times 1000 lookups of which half hit. Each result is printed to
// w as "<size> <elapsed>" as soon as it is measured.
func Sweep(w io.Writer, sizes []uint64, fpRate float64) ([]SweepResult, error) {
	inserted := make([]string, sweepInserted)
	for i := range inserted {
		inserted[i] = strconv.Itoa(i)
	}
	probes := make([]string, sweepProbes)
	for i := range probes {
		probes[i] = strconv.Itoa(i + sweepProbeOffset)
	}

	results := make([]SweepResult, 0, len(sizes))
	for _, size := range sizes {
		f, err := saltbloom.NewString(size, fpRate)
		if err != nil {
			return results, fmt.Errorf("sizing filter for %d items: %w", size, err)
		}
		log.Debugf("sweep: %s items -> %s bitset, k=%d",
			humanize.Comma(int64(size)), humanize.Bytes((f.Cap()+7)/8), f.K())

		for _, key := range inserted {
			f.Add(key)
		}

		res := SweepResult{Size: size}
		start := time.Now()
		for _, key := range probes {
			if f.Contains(key) {
				res.Hits++
			}
		}
		res.Elapsed = time.Since(start)

		if _, err := fmt.Fprintf(w, "%d %v\n", res.Size, res.Elapsed); err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}
