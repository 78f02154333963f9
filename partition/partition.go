// Package partition resolves subsystem selections over classical registers.
//
// Bitstrings are big-endian: register q of an n-register system lives at
// string position n-q-1. A selection can be given as a degree (last n
// qubits), a contiguous range with cyclic wraparound, or an explicit
// register list; every form resolves to one canonical list sorted in
// descending register order before any numeric work.
package partition

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSliceOutOfRange is returned by CyclicSlice for indices beyond the
	// target length.
	ErrSliceOutOfRange = errors.New("slice out of range")
	// ErrInvalidDegree is returned for degree specifications that do not
	// describe a subsystem of the given system.
	ErrInvalidDegree = errors.New("invalid degree")
	// ErrInvalidRange is returned by DegreeHandler when the resolved
	// bitstring range fails one of its bound checks.
	ErrInvalidRange = errors.New("invalid bitstring range")
	// ErrInvalidRegisters is returned for out-of-range or duplicated
	// register indices.
	ErrInvalidRegisters = errors.New("invalid classical registers")
)

// Span is a half-open register range [Start, End). A negative Start with a
// non-negative End denotes a cyclic range wrapping around the system end.
type Span struct {
	Start, End int
}

// Width returns End - Start.
func (s Span) Width() int { return s.End - s.Start }

// Degree specifies a subsystem: the number of qubits counted from the top of
// the system, or an explicit range. A nil *Degree selects the whole system.
type Degree struct {
	pair bool
	a, b int
}

// Size selects the last n qubits of the system.
func Size(n int) *Degree { return &Degree{a: n} }

// Between selects the range [a, b) with cyclic wraparound semantics when
// a < 0 <= b.
func Between(a, b int) *Degree { return &Degree{pair: true, a: a, b: b} }

// CyclicSlice slices target by [start, end) with wraparound, then keeps
// every step-th character. When start < 0 <= end the result is
// target[start:] + target[:end]; otherwise negative indices count from the
// end and the slice is plain. An empty target is returned unchanged.
func CyclicSlice(target string, start, end, step int) (string, error) {
	length := len(target)
	if start < -length {
		return "", fmt.Errorf("%w: start %d < -length %d", ErrSliceOutOfRange, start, -length)
	}
	if end > length {
		return "", fmt.Errorf("%w: end %d > length %d", ErrSliceOutOfRange, end, length)
	}
	if length <= 0 {
		return target, nil
	}

	var sliced string
	switch {
	case start >= 0 && end >= 0:
		sliced = target[start:end]
	case start < 0 && end >= 0:
		sliced = target[start+length:] + target[:end]
	case start >= 0 && end < 0:
		sliced = target[start : end+length]
	default:
		sliced = target[start+length : end+length]
	}

	if step == 1 {
		return sliced, nil
	}
	var sb strings.Builder
	for i := 0; i < len(sliced); i += step {
		sb.WriteByte(sliced[i])
	}
	return sb.String(), nil
}

// CyclicSliceOf is CyclicSlice over an arbitrary element slice.
func CyclicSliceOf[E any](target []E, start, end, step int) ([]E, error) {
	length := len(target)
	if start < -length {
		return nil, fmt.Errorf("%w: start %d < -length %d", ErrSliceOutOfRange, start, -length)
	}
	if end > length {
		return nil, fmt.Errorf("%w: end %d > length %d", ErrSliceOutOfRange, end, length)
	}
	if length <= 0 {
		return target, nil
	}

	var sliced []E
	switch {
	case start >= 0 && end >= 0:
		sliced = target[start:end]
	case start < 0 && end >= 0:
		sliced = append(append([]E{}, target[start+length:]...), target[:end]...)
	case start >= 0 && end < 0:
		sliced = target[start : end+length]
	default:
		sliced = target[start+length : end+length]
	}

	if step == 1 {
		return sliced, nil
	}
	out := make([]E, 0, (len(sliced)+step-1)/step)
	for i := 0; i < len(sliced); i += step {
		out = append(out, sliced[i])
	}
	return out, nil
}

// QubitSelector normalizes a degree specification into a half-open span.
// A nil degree selects the whole system. An integer degree d selects the
// last d qubits, [numQubits-d, numQubits). A pair is reduced modulo
// numQubits unless it straddles zero (a < 0 <= b), which is kept raw as a
// cyclic range.
func QubitSelector(numQubits int, degree *Degree) (Span, error) {
	if degree == nil {
		return Span{0, numQubits}, nil
	}

	if !degree.pair {
		d := degree.a
		if d > numQubits {
			return Span{}, fmt.Errorf(
				"%w: subsystem A includes %d qubits beyond the %d the wave function has",
				ErrInvalidDegree, d, numQubits)
		}
		if d < 0 {
			return Span{}, fmt.Errorf(
				"%w: the number of qubits of subsystem A has to be a natural number, got %d",
				ErrInvalidDegree, d)
		}
		return Span{numQubits - d, numQubits}, nil
	}

	a, b := degree.a, degree.b
	if a < 0 && b > 0 {
		// cyclic range, kept raw
		if b < a {
			a, b = b, a
		}
		return Span{a, b}, nil
	}
	ma, mb := wrapIndex(a, numQubits), wrapIndex(b, numQubits)
	if ma > mb {
		ma, mb = mb, ma
	}
	return Span{ma, mb}, nil
}

func wrapIndex(d, n int) int {
	if d == n {
		return n
	}
	return ((d % n) + n) % n
}

// DegreeHandler composes QubitSelector for the partition and the measure
// range, validating that the bitstring range lies within the system.
// A nil measure defaults to the resolved partition re-run through
// QubitSelector.
func DegreeHandler(allsystemSize int, degree *Degree, measure *Span) (Span, Span, int, error) {
	bitstringRange, err := QubitSelector(allsystemSize, degree)
	if err != nil {
		return Span{}, Span{}, 0, err
	}
	subsystemSize := bitstringRange.Width()

	checks := []struct {
		name string
		ok   bool
	}{
		{"b > a", bitstringRange.End > bitstringRange.Start},
		{"a >= -allsystemSize", bitstringRange.Start >= -allsystemSize},
		{"b <= allsystemSize", bitstringRange.End <= allsystemSize},
		{"b-a <= allsystemSize", subsystemSize <= allsystemSize},
	}
	var failed []string
	for _, c := range checks {
		if !c.ok {
			failed = append(failed, c.name)
		}
	}
	if len(failed) > 0 {
		return Span{}, Span{}, 0, fmt.Errorf(
			"%w: bitstringRange = [%d, %d) for allsystemSize = %d violates: %s",
			ErrInvalidRange, bitstringRange.Start, bitstringRange.End, allsystemSize,
			strings.Join(failed, "; "))
	}

	var measureRange Span
	if measure != nil {
		measureRange = *measure
	} else {
		measureRange, err = QubitSelector(allsystemSize, Between(bitstringRange.Start, bitstringRange.End))
		if err != nil {
			return Span{}, Span{}, 0, err
		}
	}
	return bitstringRange, measureRange, subsystemSize, nil
}

// QubitMapper maps each selected register to its bit position in the
// collapsed bitstring, which is laid out in descending register order.
func QubitMapper(actualNumQubits int, selected Selector) (map[int]int, error) {
	registers, err := selected.Resolve(actualNumQubits)
	if err != nil {
		return nil, err
	}
	m := make(map[int]int, len(registers))
	for pos, q := range registers {
		m[q] = pos
	}
	return m, nil
}
