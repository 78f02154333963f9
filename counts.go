package qumetry

import (
	"errors"
	"fmt"
)

// ErrWidthMismatch is returned when a histogram key's width disagrees with
// the declared register count.
var ErrWidthMismatch = errors.New("bitstring widths do not match")

// Counts is the histogram of observed measurement bitstrings for one circuit
// execution batch. Keys are fixed-width strings of '0'/'1' in big-endian
// classical-register order: register q of an n-register system is the
// character at position n-q-1.
type Counts map[string]int64

// Total returns the sum of all occurrence counts.
func (c Counts) Total() int64 {
	var total int64
	for _, v := range c {
		total += v
	}
	return total
}

// NumClassicalRegisters returns the bitstring width, 0 for an empty
// histogram.
func (c Counts) NumClassicalRegisters() int {
	for k := range c {
		return len(k)
	}
	return 0
}

// Restrict collapses the histogram onto the given classical registers,
// summing counts that land on the same restricted bitstring. registersDesc
// must be sorted descending; the restricted keys are laid out in that order.
// Every key must have width numClassical.
func (c Counts) Restrict(numClassical int, registersDesc []int) (Counts, error) {
	restricted := make(Counts, len(c))
	buf := make([]byte, len(registersDesc))
	for bitstringAll, n := range c {
		if len(bitstringAll) != numClassical {
			return nil, fmt.Errorf("%w: key %q has width %d, want %d",
				ErrWidthMismatch, bitstringAll, len(bitstringAll), numClassical)
		}
		for i, q := range registersDesc {
			buf[i] = bitstringAll[numClassical-q-1]
		}
		restricted[string(buf)] += n
	}
	return restricted, nil
}
