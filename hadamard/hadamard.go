// Package hadamard implements the Hadamard-test estimators: the purity or
// echo read directly off a single ancilla register as the expectation of its
// measurement outcome.
package hadamard

import (
	"errors"
	"fmt"
	"math"

	qumetry "github.com/qumetry/qumetry"
)

var (
	// ErrEmptyCounts is returned when the estimator receives no samples.
	ErrEmptyCounts = errors.New("no counts given")
	// ErrShotsMismatch is returned when the declared shots disagree with the
	// sample's count sum.
	ErrShotsMismatch = errors.New("shots do not match sample count sum")
	// ErrNoAncillaKeys is returned when the ancilla histogram holds neither
	// a "0" nor a "1" key.
	ErrNoAncillaKeys = errors.New(`expected "0" or "1" ancilla keys`)
)

// EntropyResult is the quantity record of EntangledEntropy.
type EntropyResult struct {
	Purity  float64 `cbor:"purity"`
	Entropy float64 `cbor:"entropy"`
}

// EchoResult is the quantity record of OverlapEcho.
type EchoResult struct {
	Echo float64 `cbor:"echo"`
}

// PurityEchoCore reads the purity (or echo) off the first sample's ancilla
// histogram as ("0" - "1") / shots. A missing key contributes zero; both
// keys missing is an error.
func PurityEchoCore(shots int, counts []qumetry.Counts) (float64, error) {
	if len(counts) == 0 {
		return 0, ErrEmptyCounts
	}
	onlyCounts := counts[0]
	if sampleShots := onlyCounts.Total(); sampleShots != int64(shots) {
		return 0, fmt.Errorf("%w: shots %d, sample sum %d", ErrShotsMismatch, shots, sampleShots)
	}

	zero, zeroOK := onlyCounts["0"]
	one, oneOK := onlyCounts["1"]
	switch {
	case zeroOK && oneOK:
		return float64(zero-one) / float64(shots), nil
	case zeroOK:
		return float64(zero) / float64(shots), nil
	case oneOK:
		return float64(one) / float64(shots), nil
	default:
		return 0, ErrNoAncillaKeys
	}
}

// EntangledEntropy estimates the second-order Rényi entropy from a
// Hadamard-test ancilla readout.
func EntangledEntropy(shots int, counts []qumetry.Counts) (*EntropyResult, error) {
	purity, err := PurityEchoCore(shots, counts)
	if err != nil {
		return nil, err
	}
	return &EntropyResult{
		Purity:  purity,
		Entropy: -math.Log2(purity),
	}, nil
}

// OverlapEcho estimates the wavefunction overlap from a Hadamard-test
// ancilla readout.
func OverlapEcho(shots int, counts []qumetry.Counts) (*EchoResult, error) {
	echo, err := PurityEchoCore(shots, counts)
	if err != nil {
		return nil, err
	}
	return &EchoResult{Echo: echo}, nil
}
