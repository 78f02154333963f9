// Package qumetry post-processes quantum measurement outcomes into
// entanglement and purity estimators.
//
// It consumes raw bitstring count histograms produced by randomized or
// hadamard-test measurement circuits and computes:
//   - Second-order Rényi entanglement entropy via randomized measurements,
//     with optional depolarizing error mitigation
//   - Wavefunction overlap (Loschmidt echo) between two states
//   - Classical-shadow density matrix reconstruction, expectation and purity
//   - Magnetization squared
//
// Circuit construction and execution are out of scope; qumetry starts where
// the counts end.
package qumetry

import (
	"github.com/blang/semver/v4"

	"github.com/qumetry/qumetry/backend"
)

var Version = semver.MustParse("0.3.0")

// Backends returns the numeric backends implemented by qumetry.
func Backends() []backend.ID {
	return backend.Implemented()
}
