package calibrate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single corpus line.
const maxLineBytes = 64 << 20

// ErrIO is returned when a corpus cannot be opened or read.
var ErrIO = errors.New("calibrate: corpus I/O failure")

// ReadLines calls fn for every newline-delimited line of r, with leading and
// trailing whitespace removed. Iteration stops at the first error returned
// by fn, which is passed through unchanged.
func ReadLines(r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := fn(strings.TrimSpace(scanner.Text())); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// withCorpus opens path and hands it to fn.
func withCorpus(path string, fn func(r io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()

	return fn(file)
}
