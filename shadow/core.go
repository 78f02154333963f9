package shadow

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/qumetry/qumetry/internal/cmplxmat"
	"github.com/qumetry/qumetry/internal/parallel"
	"github.com/qumetry/qumetry/logger"
	"github.com/qumetry/qumetry/partition"

	qumetry "github.com/qumetry/qumetry"
)

// ErrLengthMismatch is returned when the assignment list and the sample list
// disagree in length.
var ErrLengthMismatch = errors.New("assignments and counts not same length")

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

// rhoCore dispatches RhoMCell over all samples and gathers the snapshots
// keyed by sample index. The maps are indexed by sample, never by completion
// order, so the parallel path needs no ordering guarantee.
func rhoCore(counts []qumetry.Counts, assignments []Assignment, registersDesc []int, workers int) (
	map[int]*cmplxmat.Matrix, map[int]map[int]*cmplxmat.Matrix, float64, error,
) {
	begin := time.Now()

	cells := make([]RhoCell, len(counts))
	err := parallel.MapIndexed(workers, len(counts), func(i int) error {
		cell, err := RhoMCell(i, counts[i], assignments[i], registersDesc)
		if err != nil {
			return err
		}
		cells[i] = cell
		return nil
	})
	if err != nil {
		return nil, nil, 0, err
	}

	rhoMs := make(map[int]*cmplxmat.Matrix, len(cells))
	perRegister := make(map[int]map[int]*cmplxmat.Matrix, len(cells))
	divergent := 0
	for _, cell := range cells {
		rhoMs[cell.Index] = cell.Rho
		perRegister[cell.Index] = cell.PerRegister
		if !slices.Equal(cell.Registers, registersDesc) {
			divergent++
		}
	}
	if divergent > 0 {
		log := logger.Logger()
		log.Warn().Int("cells", divergent).
			Msg("selected classical registers diverge from the canonical selection")
	}

	return rhoMs, perRegister, time.Since(begin).Seconds(), nil
}
