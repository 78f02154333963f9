package partition

import (
	"fmt"
	"sort"
)

// Selector is a closed set of subsystem selection forms. Resolve reduces any
// form to the canonical register list: sorted descending, duplicate-free,
// every index in [0, numClassical).
type Selector interface {
	// Resolve returns the canonical descending register list for a system
	// of numClassical registers.
	Resolve(numClassical int) ([]int, error)
	fmt.Stringer
}

type wholeSystem struct{}

type lastN struct{ n int }

type spanSelector struct{ a, b int }

type registerList struct{ registers []int }

// WholeSystem selects every classical register.
func WholeSystem() Selector { return wholeSystem{} }

// LastN selects the last n qubits of the system.
func LastN(n int) Selector { return lastN{n} }

// Range selects [a, b) with cyclic wraparound semantics, the legacy
// contiguous form.
func Range(a, b int) Selector { return spanSelector{a, b} }

// Registers selects an explicit register list, the canonical form.
func Registers(registers ...int) Selector {
	return registerList{registers: registers}
}

func (wholeSystem) Resolve(numClassical int) ([]int, error) {
	return descending(seq(0, numClassical)), nil
}

func (wholeSystem) String() string { return "whole system" }

func (s lastN) Resolve(numClassical int) ([]int, error) {
	span, err := QubitSelector(numClassical, Size(s.n))
	if err != nil {
		return nil, err
	}
	return descending(seq(span.Start, span.End)), nil
}

func (s lastN) String() string { return fmt.Sprintf("last %d qubits", s.n) }

func (s spanSelector) Resolve(numClassical int) ([]int, error) {
	span, err := QubitSelector(numClassical, Between(s.a, s.b))
	if err != nil {
		return nil, err
	}
	registers := make([]int, 0, span.Width())
	for i := span.Start; i < span.End; i++ {
		registers = append(registers, wrapIndex(i, numClassical))
	}
	return canonicalize(registers, numClassical)
}

func (s spanSelector) String() string { return fmt.Sprintf("range [%d, %d)", s.a, s.b) }

func (s registerList) Resolve(numClassical int) ([]int, error) {
	return canonicalize(s.registers, numClassical)
}

func (s registerList) String() string { return fmt.Sprintf("registers %v", s.registers) }

func seq(a, b int) []int {
	r := make([]int, 0, b-a)
	for i := a; i < b; i++ {
		r = append(r, i)
	}
	return r
}

func descending(registers []int) []int {
	sort.Sort(sort.Reverse(sort.IntSlice(registers)))
	return registers
}

func canonicalize(registers []int, numClassical int) ([]int, error) {
	out := make([]int, len(registers))
	copy(out, registers)
	seen := make(map[int]struct{}, len(out))
	for _, q := range out {
		if q < 0 || q >= numClassical {
			return nil, fmt.Errorf("%w: index %d out of [0, %d)", ErrInvalidRegisters, q, numClassical)
		}
		if _, dup := seen[q]; dup {
			return nil, fmt.Errorf("%w: duplicated index %d", ErrInvalidRegisters, q)
		}
		seen[q] = struct{}{}
	}
	return descending(out), nil
}
