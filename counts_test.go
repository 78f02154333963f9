package qumetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsTotal(t *testing.T) {
	assert.Equal(t, int64(0), Counts{}.Total())
	assert.Equal(t, int64(4096), Counts{"00": 2048, "11": 2048}.Total())
}

func TestCountsNumClassicalRegisters(t *testing.T) {
	assert.Equal(t, 0, Counts{}.NumClassicalRegisters())
	assert.Equal(t, 8, Counts{"10010101": 1}.NumClassicalRegisters())
}

func TestCountsRestrict(t *testing.T) {
	c := Counts{
		"010": 3,
		"110": 5,
		"001": 7,
	}

	// register 0 is the last character
	got, err := c.Restrict(3, []int{0})
	require.NoError(t, err)
	assert.Equal(t, Counts{"0": 8, "1": 7}, got)

	// descending register order lays out [2, 1] as (bit2, bit1)
	got, err = c.Restrict(3, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, Counts{"01": 3, "11": 5, "00": 7}, got)

	// whole system keeps every key distinct
	got, err = c.Restrict(3, []int{2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCountsRestrictWidthMismatch(t *testing.T) {
	c := Counts{"010": 1, "0101": 1}
	_, err := c.Restrict(3, []int{0})
	assert.ErrorIs(t, err, ErrWidthMismatch)
}
