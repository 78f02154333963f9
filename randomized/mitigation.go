package randomized

import "math"

// Depolarizing error mitigation after Vovrosh et al., Simple mitigation of
// global depolarizing errors in quantum simulations, Phys. Rev. E 104,
// 035309 (2021).

// Mitigation bundles the outputs of DepolarizingErrorMitigation.
type Mitigation struct {
	ErrorRate        float64
	MitigatedPurity  float64
	MitigatedEntropy float64
}

// SolveP solves a*p^2 + b*p + c = 0 for the depolarizing parameter, with
// a = 1 + 2^-n - 2^-(n-1), b = 2^-(n-1) - 2, c = 1 - measured, and returns
// both roots (p+, p-). The smaller root p- is the physical solution.
func SolveP(measured float64, n int) (float64, float64) {
	b := math.Pow(2, -float64(n-1)) - 2
	a := 1 + math.Pow(2, -float64(n)) - math.Pow(2, -float64(n-1))
	c := 1 - measured
	disc := math.Sqrt(b*b - 4*a*c)
	return (-b + disc) / (2 * a), (-b - disc) / (2 * a)
}

// SolvePSlice is SolveP over a measured series, for batch contexts.
func SolvePSlice(measured []float64, n int) ([]float64, []float64) {
	pp := make([]float64, len(measured))
	pn := make([]float64, len(measured))
	for i, m := range measured {
		pp[i], pn[i] = SolveP(m, n)
	}
	return pp, pn
}

// MitigationEquation removes the depolarizing contribution p from a measured
// subsystem purity of size nA.
func MitigationEquation(p, measured float64, nA int) float64 {
	psq := p * p
	return (measured - psq*math.Pow(2, -float64(nA)) - (p-psq)*math.Pow(2, -float64(nA-1))) /
		((1 - p) * (1 - p))
}

// MitigationEquationSlice is MitigationEquation over matched series.
func MitigationEquationSlice(p, measured []float64, nA int) []float64 {
	out := make([]float64, len(measured))
	for i := range measured {
		out[i] = MitigationEquation(p[i], measured[i], nA)
	}
	return out
}

// DepolarizingErrorMitigation corrects a measured subsystem purity using the
// whole-system purity baseline. nA is the measured subsystem size,
// systemSize the whole system size.
func DepolarizingErrorMitigation(measSystem, allSystem float64, nA, systemSize int) Mitigation {
	_, pn := SolveP(allSystem, systemSize)
	mitigated := MitigationEquation(pn, measSystem, nA)
	return Mitigation{
		ErrorRate:        pn,
		MitigatedPurity:  mitigated,
		MitigatedEntropy: -math.Log2(mitigated),
	}
}
