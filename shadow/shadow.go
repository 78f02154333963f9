package shadow

import (
	"fmt"
	"math"
	"slices"

	"github.com/qumetry/qumetry/internal/cmplxmat"
	"github.com/qumetry/qumetry/partition"

	qumetry "github.com/qumetry/qumetry"
)

// ExpectationResult is the quantity record of the expectation-of-rho
// estimator. RhoM and RhoMPerRegister are keyed by sample index.
type ExpectationResult struct {
	Expectation *cmplxmat.Matrix

	RhoM            map[int]*cmplxmat.Matrix
	RhoMPerRegister map[int]map[int]*cmplxmat.Matrix

	NumClassicalRegisters int
	Registers             []int
	RegistersActual       []int

	CountsNum  int
	TakingTime float64
}

// PurityResult is the quantity record of the trace-of-rho-squared estimator.
type PurityResult struct {
	Purity  float64
	Entropy float64
	Method  Method

	RhoM            map[int]*cmplxmat.Matrix
	RhoMPerRegister map[int]map[int]*cmplxmat.Matrix

	NumClassicalRegisters int
	Registers             []int
	RegistersActual       []int

	CountsNum  int
	TakingTime float64
}

// Result is the combined record of ClassicalShadow: expectation and purity
// from one snapshot pass.
type Result struct {
	Expectation *cmplxmat.Matrix
	Purity      float64
	Entropy     float64
	Method      Method

	RhoM            map[int]*cmplxmat.Matrix
	RhoMPerRegister map[int]map[int]*cmplxmat.Matrix

	NumClassicalRegisters int
	Registers             []int
	RegistersActual       []int

	CountsNum  int
	TakingTime float64
}

// ExpectationRho averages the per-sample density-matrix snapshots across all
// samples. The average of valid snapshots is Hermitian with unit trace up to
// floating error.
func ExpectationRho(shots int, counts []qumetry.Counts, assignments []Assignment, sel partition.Selector, opts ...Option) (*ExpectationResult, error) {
	cfg, registersDesc, numClassical, err := prepare(shots, counts, assignments, sel, opts...)
	if err != nil {
		return nil, err
	}
	rhoMs, perRegister, taken, err := rhoCore(counts, assignments, registersDesc, cfg.workers)
	if err != nil {
		return nil, err
	}
	return &ExpectationResult{
		Expectation:           expectationCore(rhoMs, len(registersDesc)),
		RhoM:                  rhoMs,
		RhoMPerRegister:       perRegister,
		NumClassicalRegisters: numClassical,
		Registers:             requestedRegisters(sel, numClassical),
		RegistersActual:       registersDesc,
		CountsNum:             len(counts),
		TakingTime:            taken,
	}, nil
}

// TraceRhoSquare estimates the subsystem purity as the pair-averaged trace
// of snapshot products, and the entropy as -log2 of it.
func TraceRhoSquare(shots int, counts []qumetry.Counts, assignments []Assignment, sel partition.Selector, opts ...Option) (*PurityResult, error) {
	return traceRhoSquare(shots, counts, assignments, sel, MethodPairTrace, opts...)
}

// TraceRhoSquareComplex is the per-register variant of TraceRhoSquare: each
// pair's factors are split into two halves of alternating ownership before
// tracing.
func TraceRhoSquareComplex(shots int, counts []qumetry.Counts, assignments []Assignment, sel partition.Selector, opts ...Option) (*PurityResult, error) {
	return traceRhoSquare(shots, counts, assignments, sel, MethodRegisterSwap, opts...)
}

func traceRhoSquare(shots int, counts []qumetry.Counts, assignments []Assignment, sel partition.Selector, method Method, opts ...Option) (*PurityResult, error) {
	cfg, registersDesc, numClassical, err := prepare(shots, counts, assignments, sel, opts...)
	if err != nil {
		return nil, err
	}
	rhoMs, perRegister, taken, err := rhoCore(counts, assignments, registersDesc, cfg.workers)
	if err != nil {
		return nil, err
	}
	purity, err := purityCore(rhoMs, perRegister, registersDesc, method)
	if err != nil {
		return nil, err
	}
	return &PurityResult{
		Purity:                purity,
		Entropy:               -math.Log2(purity),
		Method:                method,
		RhoM:                  rhoMs,
		RhoMPerRegister:       perRegister,
		NumClassicalRegisters: numClassical,
		Registers:             requestedRegisters(sel, numClassical),
		RegistersActual:       registersDesc,
		CountsNum:             len(counts),
		TakingTime:            taken,
	}, nil
}

// ClassicalShadow computes the expectation matrix and the purity from one
// snapshot pass. The purity estimator is picked with WithMethod.
func ClassicalShadow(shots int, counts []qumetry.Counts, assignments []Assignment, sel partition.Selector, opts ...Option) (*Result, error) {
	cfg, registersDesc, numClassical, err := prepare(shots, counts, assignments, sel, opts...)
	if err != nil {
		return nil, err
	}
	rhoMs, perRegister, taken, err := rhoCore(counts, assignments, registersDesc, cfg.workers)
	if err != nil {
		return nil, err
	}
	purity, err := purityCore(rhoMs, perRegister, registersDesc, cfg.method)
	if err != nil {
		return nil, err
	}
	return &Result{
		Expectation:           expectationCore(rhoMs, len(registersDesc)),
		Purity:                purity,
		Entropy:               -math.Log2(purity),
		Method:                cfg.method,
		RhoM:                  rhoMs,
		RhoMPerRegister:       perRegister,
		NumClassicalRegisters: numClassical,
		Registers:             requestedRegisters(sel, numClassical),
		RegistersActual:       registersDesc,
		CountsNum:             len(counts),
		TakingTime:            taken,
	}, nil
}

func prepare(shots int, counts []qumetry.Counts, assignments []Assignment, sel partition.Selector, opts ...Option) (config, []int, int, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return config{}, nil, 0, err
	}
	if len(counts) == 0 {
		return config{}, nil, 0, ErrEmptyCounts
	}
	if len(assignments) != len(counts) {
		return config{}, nil, 0, fmt.Errorf("%w: %d assignments, %d samples",
			ErrLengthMismatch, len(assignments), len(counts))
	}
	registersDesc, numClassical, err := resolveSelection(shots, counts[0], sel)
	if err != nil {
		return config{}, nil, 0, err
	}
	return cfg, registersDesc, numClassical, nil
}

// expectationCore averages the snapshots.
func expectationCore(rhoMs map[int]*cmplxmat.Matrix, subsystemSize int) *cmplxmat.Matrix {
	dim := 1 << subsystemSize
	acc := cmplxmat.New(dim, dim)
	for _, rho := range rhoMs {
		acc.Add(rho)
	}
	return acc.Scale(complex(1/float64(len(rhoMs)), 0))
}

func purityCore(rhoMs map[int]*cmplxmat.Matrix, perRegister map[int]map[int]*cmplxmat.Matrix, registersDesc []int, method Method) (float64, error) {
	switch method {
	case MethodPairTrace:
		return pairTraceCore(rhoMs), nil
	case MethodRegisterSwap:
		return registerSwapCore(perRegister, registersDesc), nil
	default:
		return 0, fmt.Errorf("invalid shadow method %d", method)
	}
}

// pairTraceCore averages Tr(rho_u rho_v) over all ordered pairs of distinct
// samples. Tr(AB) equals Tr(BA), so each unordered pair contributes twice
// the one trace, normalized by N(N-1).
func pairTraceCore(rhoMs map[int]*cmplxmat.Matrix) float64 {
	indices := sortedKeys(rhoMs)
	n := len(indices)
	if n < 2 {
		return math.NaN()
	}
	var sum float64
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			t := cmplxmat.Trace(cmplxmat.Mul(rhoMs[indices[a]], rhoMs[indices[b]]))
			sum += 2 * real(t)
		}
	}
	return sum / float64(n*(n-1))
}

// registerSwapCore is the per-register factorization of pairTraceCore: for
// each sample pair the registers are split into two halves of alternating
// ownership, and the trace of the two tensor products reduces to the product
// of per-register traces.
func registerSwapCore(perRegister map[int]map[int]*cmplxmat.Matrix, registersDesc []int) float64 {
	indices := sortedKeys(perRegister)
	n := len(indices)
	if n < 2 {
		return math.NaN()
	}
	var sum float64
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			first, second := perRegister[indices[a]], perRegister[indices[b]]
			prod := complex(1, 0)
			for k, q := range registersDesc {
				x, y := first[q], second[q]
				if k%2 == 1 {
					x, y = y, x
				}
				prod *= cmplxmat.Trace(cmplxmat.Mul(x, y))
			}
			sum += 2 * real(prod)
		}
	}
	return sum / float64(n*(n-1))
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// requestedRegisters reports the selection as requested: nil for the whole
// system, the resolved canonical list otherwise.
func requestedRegisters(sel partition.Selector, numClassical int) []int {
	if sel == nil {
		return nil
	}
	registers, err := sel.Resolve(numClassical)
	if err != nil {
		return nil
	}
	return registers
}
