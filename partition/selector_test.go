package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorResolve(t *testing.T) {
	cases := []struct {
		name string
		sel  Selector
		want []int
	}{
		{"whole system", WholeSystem(), []int{7, 6, 5, 4, 3, 2, 1, 0}},
		{"last six", LastN(6), []int{7, 6, 5, 4, 3, 2}},
		{"plain range", Range(2, 8), []int{7, 6, 5, 4, 3, 2}},
		{"cyclic range", Range(-2, 5), []int{7, 6, 4, 3, 2, 1, 0}},
		{"negative range", Range(-5, -1), []int{6, 5, 4, 3}},
		{"reversed mixed range", Range(3, -2), []int{5, 4, 3}},
		{"explicit list", Registers(3, 0, 5), []int{5, 3, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.sel.Resolve(8)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Every legacy degree form must resolve to the same canonical set as the
// equivalent explicit register list.
func TestSelectorFormsAgree(t *testing.T) {
	cases := []struct {
		name   string
		legacy Selector
		lists  Selector
	}{
		{"degree six", LastN(6), Registers(2, 3, 4, 5, 6, 7)},
		{"range (2,8)", Range(2, 8), Registers(7, 6, 5, 4, 3, 2)},
		{"range (-2,5)", Range(-2, 5), Registers(6, 7, 0, 1, 2, 3, 4)},
		{"range (-5,-1)", Range(-5, -1), Registers(3, 4, 5, 6)},
		{"range (3,-2)", Range(3, -2), Registers(3, 4, 5)},
		{"whole system", WholeSystem(), Registers(0, 1, 2, 3, 4, 5, 6, 7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fromLegacy, err := tc.legacy.Resolve(8)
			require.NoError(t, err)
			fromList, err := tc.lists.Resolve(8)
			require.NoError(t, err)
			assert.Equal(t, fromLegacy, fromList)
		})
	}
}

func TestSelectorResolveErrors(t *testing.T) {
	_, err := Registers(0, 8).Resolve(8)
	assert.ErrorIs(t, err, ErrInvalidRegisters)

	_, err = Registers(-1).Resolve(8)
	assert.ErrorIs(t, err, ErrInvalidRegisters)

	_, err = Registers(1, 1).Resolve(8)
	assert.ErrorIs(t, err, ErrInvalidRegisters)

	_, err = LastN(9).Resolve(8)
	assert.ErrorIs(t, err, ErrInvalidDegree)
}

func TestSelectorStrings(t *testing.T) {
	assert.Equal(t, "whole system", WholeSystem().String())
	assert.Equal(t, "last 6 qubits", LastN(6).String())
	assert.Equal(t, "range [-2, 5)", Range(-2, 5).String())
	assert.Equal(t, "registers [3 0 5]", Registers(3, 0, 5).String())
}
