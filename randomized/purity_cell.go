package randomized

import (
	"fmt"
	"slices"

	"github.com/qumetry/qumetry/backend"
	"github.com/qumetry/qumetry/logger"

	qumetry "github.com/qumetry/qumetry"
)

// Cell is the per-sample statistic produced by PurityCell and EchoCell.
// Registers reports the selection the cell was actually computed over,
// sorted descending, so the aggregator can detect divergent selections
// across samples.
type Cell struct {
	Index     int
	Value     float64
	Registers []int
}

// resolveBackend applies the fallback policy: an unavailable accelerated
// backend degrades to the reference one with a warning, never an error.
func resolveBackend(id backend.ID) backend.ID {
	if id == backend.UNKNOWN {
		return backend.Default()
	}
	if !backend.Available(id) {
		log := logger.Logger()
		log.Warn().Stringer("requested", id).
			Msg("backend unavailable, falling back to reference")
		return backend.REFERENCE
	}
	return id
}

// PurityCell computes one sample's purity cell: the sum of ensemble cells
// over all ordered pairs of restricted bitstrings from the sample's
// collapsed histogram, i==j pairs included.
func PurityCell(idx int, singleCounts qumetry.Counts, selectedRegisters []int, id backend.ID) (Cell, error) {
	if len(singleCounts) == 0 {
		return Cell{}, fmt.Errorf("%w: sample %d", ErrEmptyCounts, idx)
	}
	numClassical := singleCounts.NumClassicalRegisters()
	registersDesc := slices.Clone(selectedRegisters)
	slices.SortFunc(registersDesc, func(a, b int) int { return b - a })

	var (
		value float64
		err   error
	)
	if resolveBackend(id) == backend.ACCELERATED {
		value, err = purityCellAccelerated(singleCounts, numClassical, registersDesc)
	} else {
		value, err = purityCellReference(singleCounts, numClassical, registersDesc)
	}
	if err != nil {
		return Cell{}, fmt.Errorf("sample %d: %w", idx, err)
	}
	return Cell{Index: idx, Value: value, Registers: registersDesc}, nil
}

func purityCellReference(singleCounts qumetry.Counts, numClassical int, registersDesc []int) (float64, error) {
	restricted, err := collapse(singleCounts, numClassical, registersDesc)
	if err != nil {
		return 0, err
	}
	shots := int(singleCounts.Total())
	subsystemSize := len(registersDesc)

	var value float64
	for si, ci := range restricted {
		for sj, cj := range restricted {
			cell, err := EnsembleCell(si, ci, sj, cj, subsystemSize, shots)
			if err != nil {
				return 0, err
			}
			value += cell
		}
	}
	return value, nil
}

// EchoCell computes one sample pair's echo cell: the same collapse applied
// independently to both samples' counts, then the sum of ensemble cells over
// pairs drawn one from each. Both samples must have the same width and the
// same shot total.
func EchoCell(idx int, firstCounts, secondCounts qumetry.Counts, selectedRegisters []int, id backend.ID) (Cell, error) {
	if len(firstCounts) == 0 || len(secondCounts) == 0 {
		return Cell{}, fmt.Errorf("%w: sample %d", ErrEmptyCounts, idx)
	}
	numClassical := firstCounts.NumClassicalRegisters()
	if w := secondCounts.NumClassicalRegisters(); w != numClassical {
		return Cell{}, fmt.Errorf("%w: first %d, second %d", ErrWidthMismatch, numClassical, w)
	}
	if s1, s2 := firstCounts.Total(), secondCounts.Total(); s1 != s2 {
		return Cell{}, fmt.Errorf("%w: first counts %d, second counts %d", ErrShotsMismatch, s1, s2)
	}
	registersDesc := slices.Clone(selectedRegisters)
	slices.SortFunc(registersDesc, func(a, b int) int { return b - a })

	var (
		value float64
		err   error
	)
	if resolveBackend(id) == backend.ACCELERATED {
		value, err = echoCellAccelerated(firstCounts, secondCounts, numClassical, registersDesc)
	} else {
		value, err = echoCellReference(firstCounts, secondCounts, numClassical, registersDesc)
	}
	if err != nil {
		return Cell{}, fmt.Errorf("sample %d: %w", idx, err)
	}
	return Cell{Index: idx, Value: value, Registers: registersDesc}, nil
}

func echoCellReference(firstCounts, secondCounts qumetry.Counts, numClassical int, registersDesc []int) (float64, error) {
	firstRestricted, err := collapse(firstCounts, numClassical, registersDesc)
	if err != nil {
		return 0, err
	}
	secondRestricted, err := collapse(secondCounts, numClassical, registersDesc)
	if err != nil {
		return 0, err
	}
	shots := int(firstCounts.Total())
	subsystemSize := len(registersDesc)

	var value float64
	for si, ci := range firstRestricted {
		for sj, cj := range secondRestricted {
			cell, err := EnsembleCell(si, ci, sj, cj, subsystemSize, shots)
			if err != nil {
				return 0, err
			}
			value += cell
		}
	}
	return value, nil
}
