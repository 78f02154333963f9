// Package magnetsq implements the magnetization-squared estimator over
// two-register pair measurements: one sample per ordered register pair, each
// cell the signed correlation of the two bits.
package magnetsq

import (
	"errors"
	"fmt"
	"time"

	"github.com/qumetry/qumetry/internal/parallel"

	qumetry "github.com/qumetry/qumetry"
)

var (
	// ErrEmptyCounts is returned when the estimator receives no samples.
	ErrEmptyCounts = errors.New("no counts given")
	// ErrShotsMismatch is returned when the declared shots disagree with a
	// sample's count sum.
	ErrShotsMismatch = errors.New("shots do not match sample count sum")
	// ErrNotTwoBits is returned for a histogram key that is not exactly two
	// bits wide.
	ErrNotTwoBits = errors.New("bitstring not two bits wide")
)

// Result is the quantity record of MagnetSquare. Cells is keyed by sample
// index, one sample per ordered register pair.
type Result struct {
	MagnetSquare float64 `cbor:"magnetsq"`

	Cells map[int]float64 `cbor:"magnetsqCells"`

	NumQubits  int     `cbor:"numQubits"`
	CountsNum  int     `cbor:"countsNum"`
	TakingTime float64 `cbor:"takingTime"`
}

// Option alters the behavior of an estimator call.
type Option func(*config) error

type config struct {
	workers int
}

func newConfig(opts ...Option) (config, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	cfg.workers = parallel.WorkersDistribution(cfg.workers)
	return cfg, nil
}

// WithWorkers fixes the number of parallel workers; 1 forces fully serial
// execution.
func WithWorkers(n int) Option {
	return func(c *config) error {
		c.workers = n
		return nil
	}
}

// Cell computes one pair sample's magnetization cell: +count/shots when the
// two bits agree, -count/shots when they differ, summed over the histogram.
func Cell(idx int, singleCounts qumetry.Counts, shots int) (int, float64, error) {
	if sum := singleCounts.Total(); sum != int64(shots) {
		return 0, 0, fmt.Errorf("%w: shots %d, sample %d sum %d", ErrShotsMismatch, shots, idx, sum)
	}
	var cell float64
	for bits, n := range singleCounts {
		if len(bits) != 2 {
			return 0, 0, fmt.Errorf("%w: sample %d key %q", ErrNotTwoBits, idx, bits)
		}
		ratio := float64(n) / float64(shots)
		if bits[0] == bits[1] {
			cell += ratio
		} else {
			cell -= ratio
		}
	}
	return idx, cell, nil
}

// MagnetSquare aggregates the pair cells into the magnetization-squared
// value (sum + N) / N^2, N the number of qubits. The caller supplies one
// sample per ordered register pair, N(N-1) in total.
func MagnetSquare(shots int, counts []qumetry.Counts, numQubits int, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ErrEmptyCounts
	}
	if numQubits < 1 {
		return nil, fmt.Errorf("invalid qubit count %d", numQubits)
	}

	begin := time.Now()
	values := make([]float64, len(counts))
	err = parallel.MapIndexed(cfg.workers, len(counts), func(i int) error {
		_, v, err := Cell(i, counts[i], shots)
		if err != nil {
			return err
		}
		values[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	taken := time.Since(begin).Seconds()

	cells := make(map[int]float64, len(values))
	var sum float64
	for i, v := range values {
		cells[i] = v
		sum += v
	}
	n := float64(numQubits)

	return &Result{
		MagnetSquare: (sum + n) / (n * n),
		Cells:        cells,
		NumQubits:    numQubits,
		CountsNum:    len(counts),
		TakingTime:   taken,
	}, nil
}
