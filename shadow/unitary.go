// Package shadow implements classical-shadow tomography over randomized
// single-qubit measurement bases: per-sample density-matrix reconstruction
// from count histograms and the estimators built on it (expectation of rho,
// purity via trace of rho squared, second-order Rényi entropy).
//
// See Huang, Kueng and Preskill, Predicting many properties of a quantum
// system from very few measurements, Nat. Phys. 16, 1050-1057 (2020).
package shadow

import (
	"fmt"
	"math"

	"github.com/qumetry/qumetry/internal/cmplxmat"
)

// UnitaryOp tags one of the three fixed single-qubit measurement-basis
// rotations applied before readout.
type UnitaryOp uint8

const (
	// RotXHalfPi is a pi/2 rotation about X (Y-basis readout).
	RotXHalfPi UnitaryOp = iota
	// RotYNegHalfPi is a -pi/2 rotation about Y (X-basis readout).
	RotYNegHalfPi
	// RotZZero is the identity (Z-basis readout).
	RotZZero
)

func (op UnitaryOp) String() string {
	switch op {
	case RotXHalfPi:
		return "rx(pi/2)"
	case RotYNegHalfPi:
		return "ry(-pi/2)"
	case RotZZero:
		return "rz(0)"
	default:
		return "invalid"
	}
}

// Assignment maps each classical register of one sample to the unitary it
// was measured under.
type Assignment map[int]UnitaryOp

// unitaries holds the exact 2x2 matrices of the three operators, indexed by
// tag. cos(pi/4) and sin(pi/4) are equal; the distinction is kept where the
// rotation formulas differ.
var unitaries [3]*cmplxmat.Matrix

// shadowBlocks[op][b] caches 3*U^dagger |b><b| U - I for bit b.
var shadowBlocks [3][2]*cmplxmat.Matrix

func init() {
	c := complex(math.Cos(math.Pi/4), 0)
	s := complex(math.Sin(math.Pi/4), 0)
	unitaries[RotXHalfPi] = cmplxmat.FromRows([][]complex128{
		{c, -1i * s},
		{-1i * s, c},
	})
	unitaries[RotYNegHalfPi] = cmplxmat.FromRows([][]complex128{
		{c, s},
		{-s, c},
	})
	unitaries[RotZZero] = cmplxmat.Identity(2)

	projectors := [2]*cmplxmat.Matrix{
		cmplxmat.FromRows([][]complex128{{1, 0}, {0, 0}}),
		cmplxmat.FromRows([][]complex128{{0, 0}, {0, 1}}),
	}
	for op := range unitaries {
		u := unitaries[op]
		ud := cmplxmat.Dagger(u)
		for b := 0; b < 2; b++ {
			block := cmplxmat.Mul(cmplxmat.Mul(ud, projectors[b]), u).Scale(3)
			block.Add(cmplxmat.Identity(2).Scale(-1))
			shadowBlocks[op][b] = block
		}
	}
}

// Matrix returns the operator's 2x2 unitary matrix.
func (op UnitaryOp) Matrix() (*cmplxmat.Matrix, error) {
	if op > RotZZero {
		return nil, fmt.Errorf("%w: tag %d", ErrInvalidUnitary, op)
	}
	return unitaries[op].Clone(), nil
}

// snapshotBlock returns 3*U^dagger |b><b| U - I for the observed bit
// character. The returned matrix is shared and must not be mutated.
func snapshotBlock(op UnitaryOp, bit byte) (*cmplxmat.Matrix, error) {
	if op > RotZZero {
		return nil, fmt.Errorf("%w: tag %d", ErrInvalidUnitary, op)
	}
	switch bit {
	case '0':
		return shadowBlocks[op][0], nil
	case '1':
		return shadowBlocks[op][1], nil
	default:
		return nil, fmt.Errorf("%w: byte %q", ErrInvalidBit, bit)
	}
}
