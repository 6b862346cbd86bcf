// Package calibrate measures how closely a saltbloom filter tracks its
// target false positive rate on a real text corpus.
//
// A filter is populated from every trimmed line of the corpus. The corpus is
// then read again and every line is classified as a true positive or a false
// negative; any false negative is a defect, not noise. Finally, one synthetic
// string per bit of the filter is generated by appending 0, 1, 2, ... to the
// longest corpus line. Each of these is longer than any corpus line and so
// was never added, which makes them true negatives or false positives.
package calibrate

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	golog "github.com/ipfs/go-log/v2"

	"github.com/jcalabro/saltbloom"
)

var log = golog.Logger("calibrate")

// Report holds the classification counts of one calibration run.
type Report struct {
	TruePositives  uint64
	FalseNegatives uint64
	FalsePositives uint64
	TrueNegatives  uint64
}

// FalsePositiveRate returns FalsePositives / (FalsePositives + TrueNegatives),
// or 0 if no negatives were checked.
func (r Report) FalsePositiveRate() float64 {
	negatives := r.FalsePositives + r.TrueNegatives
	if negatives == 0 {
		return 0
	}
	return float64(r.FalsePositives) / float64(negatives)
}

// WriteTo prints the counts and the observed false positive rate.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"True Positives: %d\nFalse Negatives: %d\nFalse Positives: %d\nTrue Negatives: %d\n\nFalse Positives percentage: %v\n",
		r.TruePositives, r.FalseNegatives, r.FalsePositives, r.TrueNegatives, r.FalsePositiveRate())
	return int64(n), err
}

// Build creates a string filter sized for capacity items at fpRate and adds
// every line of r to it.
func Build(r io.Reader, capacity uint64, fpRate float64) (*saltbloom.Filter[string], error) {
	f, err := saltbloom.NewString(capacity, fpRate)
	if err != nil {
		return nil, err
	}

	log.Debugf("populating filter: m=%d bits (%s), k=%d", f.Cap(), humanize.Bytes((f.Cap()+7)/8), f.K())

	err = ReadLines(r, func(line string) error {
		f.Add(line)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if f.Count() > capacity {
		log.Infof("corpus has %s lines, filter was sized for %s; expect a higher false positive rate",
			humanize.Comma(int64(f.Count())), humanize.Comma(int64(capacity)))
	}

	return f, nil
}

// BuildFile is Build over the corpus at path.
func BuildFile(path string, capacity uint64, fpRate float64) (*saltbloom.Filter[string], error) {
	var f *saltbloom.Filter[string]
	err := withCorpus(path, func(r io.Reader) error {
		var err error
		f, err = Build(r, capacity, fpRate)
		return err
	})
	return f, err
}

// Check classifies every line of r and f.Cap() guaranteed-absent strings
// against f.
func Check(r io.Reader, f *saltbloom.Filter[string]) (Report, error) {
	var report Report

	// The longest line seeds the synthetic negatives below.
	var longest string
	var longestRunes int
	err := ReadLines(r, func(line string) error {
		if f.Contains(line) {
			report.TruePositives++
		} else {
			report.FalseNegatives++
		}

		if n := utf8.RuneCountInString(line); n > longestRunes {
			longest, longestRunes = line, n
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	if report.FalseNegatives > 0 {
		log.Errorf("%d inserted lines were reported absent", report.FalseNegatives)
	}
	log.Debugf("checked %s corpus lines, longest is %d characters",
		humanize.Comma(int64(report.TruePositives+report.FalseNegatives)), longestRunes)

	buf := make([]byte, 0, len(longest)+20)
	buf = append(buf, longest...)
	for i := range f.Cap() {
		probe := string(strconv.AppendUint(buf, i, 10))
		if f.Contains(probe) {
			report.FalsePositives++
		} else {
			report.TrueNegatives++
		}
	}

	log.Debugf("checked %s synthetic negatives, observed rate %.4f (target %.4f, estimated %.4f)",
		humanize.Comma(int64(f.Cap())), report.FalsePositiveRate(),
		f.TargetFalsePositiveRate(), f.EstimatedFalsePositiveRate())

	return report, nil
}

// CheckFile is Check over the corpus at path.
func CheckFile(path string, f *saltbloom.Filter[string]) (Report, error) {
	var report Report
	err := withCorpus(path, func(r io.Reader) error {
		var err error
		report, err = Check(r, f)
		return err
	})
	return report, err
}
