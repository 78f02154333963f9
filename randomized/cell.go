// Package randomized implements the randomized-measurement estimators:
// second-order Rényi entanglement entropy (optionally with depolarizing
// error mitigation) and wavefunction overlap.
//
// The elementary statistic is the ensemble cell, a weighted Hamming-distance
// kernel over pairs of restricted bitstrings; a per-sample purity or echo
// cell is the sum of ensemble cells over all ordered pairs drawn from the
// sample's collapsed count histogram.
//
// See Brydges et al., Probing Rényi entanglement entropy via randomized
// measurements, Science 364, 260-263 (2019).
package randomized

import (
	"errors"
	"fmt"
	"math"

	qumetry "github.com/qumetry/qumetry"
)

var (
	// ErrLengthMismatch is returned when two bitstrings of different
	// lengths are compared.
	ErrLengthMismatch = errors.New("bitstrings not same length")
	// ErrShotsMismatch is returned when the declared shots disagree with a
	// sample's count sum.
	ErrShotsMismatch = errors.New("shots do not match sample count sum")
	// ErrEmptyCounts is returned when an estimator receives no samples.
	ErrEmptyCounts = errors.New("no counts given")
	// ErrWidthMismatch is returned when bitstring widths disagree within or
	// across samples.
	ErrWidthMismatch = qumetry.ErrWidthMismatch
)

// HammingDistance counts the positions at which two equal-length bitstrings
// differ.
func HammingDistance(a, b string) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	d := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d, nil
}

// EnsembleCell is the pairwise statistic underlying every purity and echo
// estimator:
//
//	2^subsystemSize * (-2)^(-hamming(si, sj)) * (ci/shots) * (cj/shots)
//
// Powers go through math.Pow so the alternating-sign term stays finite for
// subsystem sizes well past 32. Both bitstrings must already be restricted
// to the subsystem and have equal length.
func EnsembleCell(si string, ci int64, sj string, cj int64, subsystemSize, shots int) (float64, error) {
	diff, err := HammingDistance(si, sj)
	if err != nil {
		return 0, err
	}
	return math.Pow(2, float64(subsystemSize)) *
		math.Pow(-2, -float64(diff)) *
		(float64(ci) / float64(shots)) *
		(float64(cj) / float64(shots)), nil
}

// collapse restricts a full-width histogram to the selected registers.
// registersDesc must be sorted descending.
func collapse(singleCounts qumetry.Counts, numClassical int, registersDesc []int) (qumetry.Counts, error) {
	return singleCounts.Restrict(numClassical, registersDesc)
}
