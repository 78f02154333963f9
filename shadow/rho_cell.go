package shadow

import (
	"errors"
	"fmt"
	"slices"

	"github.com/qumetry/qumetry/internal/cmplxmat"

	qumetry "github.com/qumetry/qumetry"
)

var (
	// ErrEmptyCounts is returned when an estimator receives no samples.
	ErrEmptyCounts = errors.New("no counts given")
	// ErrShotsMismatch is returned when the declared shots disagree with a
	// sample's count sum.
	ErrShotsMismatch = errors.New("shots do not match sample count sum")
	// ErrWidthMismatch is returned when bitstring widths disagree within or
	// across samples.
	ErrWidthMismatch = qumetry.ErrWidthMismatch
	// ErrAssignmentMismatch is returned when a sample's unitary assignment
	// does not cover exactly its classical registers.
	ErrAssignmentMismatch = errors.New("unitary assignment does not cover the classical registers")
	// ErrInvalidUnitary is returned for an out-of-range unitary tag.
	ErrInvalidUnitary = errors.New("invalid unitary operator tag")
	// ErrInvalidBit is returned for a histogram key byte other than '0'/'1'.
	ErrInvalidBit = errors.New("invalid bit character")
)

// RhoCell is the per-sample reconstruction produced by RhoMCell: the
// subsystem density-matrix snapshot, its per-register 2x2 factors, and the
// selection the cell was actually computed over, sorted descending.
type RhoCell struct {
	Index       int
	Rho         *cmplxmat.Matrix
	PerRegister map[int]*cmplxmat.Matrix
	Registers   []int
}

// RhoMCell reconstructs one sample's density-matrix snapshot. The counts are
// collapsed onto the selected registers; for every register the 2x2 factor
// is the shot-weighted average of 3*U^dagger |b><b| U - I over the restricted
// bitstrings, and the subsystem matrix is the Kronecker product of the
// factors in descending register order.
func RhoMCell(idx int, singleCounts qumetry.Counts, directions Assignment, selectedRegisters []int) (RhoCell, error) {
	if len(singleCounts) == 0 {
		return RhoCell{}, fmt.Errorf("%w: sample %d", ErrEmptyCounts, idx)
	}
	numClassical := singleCounts.NumClassicalRegisters()
	if len(directions) != numClassical {
		return RhoCell{}, fmt.Errorf("%w: sample %d has %d registers, assignment covers %d",
			ErrAssignmentMismatch, idx, numClassical, len(directions))
	}

	registersDesc := slices.Clone(selectedRegisters)
	slices.SortFunc(registersDesc, func(a, b int) int { return b - a })
	for _, q := range registersDesc {
		if _, ok := directions[q]; !ok {
			return RhoCell{}, fmt.Errorf("%w: sample %d has no direction for register %d",
				ErrAssignmentMismatch, idx, q)
		}
	}

	restricted, err := singleCounts.Restrict(numClassical, registersDesc)
	if err != nil {
		return RhoCell{}, fmt.Errorf("sample %d: %w", idx, err)
	}
	shots := singleCounts.Total()

	perRegister := make(map[int]*cmplxmat.Matrix, len(registersDesc))
	for k, q := range registersDesc {
		acc := cmplxmat.New(2, 2)
		for bitstring, n := range restricted {
			block, err := snapshotBlock(directions[q], bitstring[k])
			if err != nil {
				return RhoCell{}, fmt.Errorf("sample %d register %d: %w", idx, q, err)
			}
			acc.Add(block.Clone().Scale(complex(float64(n), 0)))
		}
		perRegister[q] = acc.Scale(complex(1/float64(shots), 0))
	}

	rho := cmplxmat.Identity(1)
	for _, q := range registersDesc {
		rho = cmplxmat.Kron(rho, perRegister[q])
	}

	return RhoCell{Index: idx, Rho: rho, PerRegister: perRegister, Registers: registersDesc}, nil
}
