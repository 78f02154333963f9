package randomized

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHammingDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"10010101", "10010101", 0},
		{"10010101", "00000000", 4},
		{"0000", "1111", 4},
		{"0110", "0101", 2},
	}
	for _, tc := range cases {
		got, err := HammingDistance(tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestHammingDistanceLengthMismatch(t *testing.T) {
	_, err := HammingDistance("010", "0101")
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEnsembleCell(t *testing.T) {
	// identical strings, zero Hamming distance
	got, err := EnsembleCell("10010101", 421, "10010101", 421, 8, 4096)
	require.NoError(t, err)
	assert.InDelta(t, float64(421*421)/float64(1<<16), got, 1e-15)

	// Hamming distance 4, even so the sign stays positive
	got, err = EnsembleCell("10010101", 421, "00000000", 11, 8, 4096)
	require.NoError(t, err)
	assert.InDelta(t, float64(421*11)/float64(1<<20), got, 1e-15)

	// odd distance flips the sign
	got, err = EnsembleCell("1", 100, "0", 100, 1, 200)
	require.NoError(t, err)
	assert.InDelta(t, -0.25, got, 1e-15)
}

func TestEnsembleCellLengthMismatch(t *testing.T) {
	_, err := EnsembleCell("10", 1, "100", 1, 2, 10)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEnsembleCellSymmetry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("swapping the pair does not change the cell", prop.ForAll(
		func(seed int64, ci, cj int64) bool {
			rng := rand.New(rand.NewSource(seed))
			si := randomBitstring(rng, 10)
			sj := randomBitstring(rng, 10)
			a, err1 := EnsembleCell(si, ci, sj, cj, 10, 4096)
			b, err2 := EnsembleCell(sj, cj, si, ci, 10, 4096)
			return err1 == nil && err2 == nil && a == b
		},
		gen.Int64(),
		gen.Int64Range(1, 4096),
		gen.Int64Range(1, 4096),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestEnsembleCellLargeSubsystem(t *testing.T) {
	// float powers keep the alternating weight finite past the shift range
	a := strings.Repeat("0", 70)
	b := strings.Repeat("1", 70)
	got, err := EnsembleCell(a, 1, b, 1, 70, 2)
	require.NoError(t, err)
	assert.False(t, math.IsInf(got, 0))
	assert.False(t, math.IsNaN(got))
}

func randomBitstring(rng *rand.Rand, width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if rng.Intn(2) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
