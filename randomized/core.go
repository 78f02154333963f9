package randomized

import (
	"fmt"
	"slices"
	"time"

	"github.com/qumetry/qumetry/backend"
	"github.com/qumetry/qumetry/internal/parallel"
	"github.com/qumetry/qumetry/logger"
	"github.com/qumetry/qumetry/partition"

	qumetry "github.com/qumetry/qumetry"
)

// resolveSelection validates counts against the declared shots and reduces
// the selection to the canonical descending register list. A nil selector
// means the whole system.
func resolveSelection(shots int, first qumetry.Counts, sel partition.Selector) ([]int, int, error) {
	if len(first) == 0 {
		return nil, 0, ErrEmptyCounts
	}
	if sampleShots := first.Total(); sampleShots != int64(shots) {
		return nil, 0, fmt.Errorf("%w: shots %d, sample sum %d", ErrShotsMismatch, shots, sampleShots)
	}
	numClassical := first.NumClassicalRegisters()
	if sel == nil {
		sel = partition.WholeSystem()
	}
	registers, err := sel.Resolve(numClassical)
	if err != nil {
		return nil, 0, err
	}
	return registers, numClassical, nil
}

// entropyCore dispatches PurityCell over all samples and gathers the cells
// keyed by sample index. The cell map is indexed by sample, never by
// completion order, so the parallel path needs no ordering guarantee.
func entropyCore(shots int, counts []qumetry.Counts, registersDesc []int, id backend.ID, workers int) (map[int]float64, float64, error) {
	begin := time.Now()

	cells := make([]Cell, len(counts))
	err := parallel.MapIndexed(workers, len(counts), func(i int) error {
		cell, err := PurityCell(i, counts[i], registersDesc, id)
		if err != nil {
			return err
		}
		cells[i] = cell
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	cellValues := make(map[int]float64, len(cells))
	divergent := 0
	for _, cell := range cells {
		cellValues[cell.Index] = cell.Value
		if !slices.Equal(cell.Registers, registersDesc) {
			divergent++
		}
	}
	if divergent > 0 {
		log := logger.Logger()
		log.Warn().Int("cells", divergent).
			Msg("selected classical registers diverge from the canonical selection")
	}

	return cellValues, time.Since(begin).Seconds(), nil
}

// echoCore is entropyCore's two-state counterpart, pairing the i-th samples
// of both count sequences.
func echoCore(shots int, first, second []qumetry.Counts, registersDesc []int, id backend.ID, workers int) (map[int]float64, float64, error) {
	begin := time.Now()

	cells := make([]Cell, len(first))
	err := parallel.MapIndexed(workers, len(first), func(i int) error {
		cell, err := EchoCell(i, first[i], second[i], registersDesc, id)
		if err != nil {
			return err
		}
		cells[i] = cell
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	cellValues := make(map[int]float64, len(cells))
	divergent := 0
	for _, cell := range cells {
		cellValues[cell.Index] = cell.Value
		if !slices.Equal(cell.Registers, registersDesc) {
			divergent++
		}
	}
	if divergent > 0 {
		log := logger.Logger()
		log.Warn().Int("cells", divergent).
			Msg("selected classical registers diverge from the canonical selection")
	}

	return cellValues, time.Since(begin).Seconds(), nil
}
