package randomized

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qumetry/qumetry/backend"
	"github.com/qumetry/qumetry/partition"

	qumetry "github.com/qumetry/qumetry"
)

func bellCounts(samples int) []qumetry.Counts {
	counts := make([]qumetry.Counts, samples)
	for i := range counts {
		counts[i] = qumetry.Counts{"00": 2048, "11": 2048}
	}
	return counts
}

func TestEntangledEntropyWholeSystem(t *testing.T) {
	counts := bellCounts(4)

	result, err := EntangledEntropy(4096, counts, nil, WithWorkers(1))
	require.NoError(t, err)

	assert.InDelta(t, 2.5, result.Purity, 1e-12)
	assert.InDelta(t, -math.Log2(2.5), result.Entropy, 1e-12)
	assert.InDelta(t, 0, result.PuritySD, 1e-12)
	assert.Equal(t, 4, result.CountsNum)
	assert.Equal(t, 2, result.NumClassicalRegisters)
	assert.Nil(t, result.Registers)
	assert.Equal(t, []int{1, 0}, result.RegistersActual)
	require.Len(t, result.PurityCells, 4)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 2.5, result.PurityCells[i], 1e-12)
	}
}

func TestEntangledEntropySubsystem(t *testing.T) {
	counts := bellCounts(3)

	result, err := EntangledEntropy(4096, counts, partition.Registers(0), WithWorkers(1))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Purity, 1e-12)
	assert.InDelta(t, 1, result.Entropy, 1e-12)
	assert.Equal(t, []int{0}, result.Registers)
	assert.Equal(t, []int{0}, result.RegistersActual)
}

// Aggregation through the legacy range form and the explicit list form of an
// equivalent register set must match to 1e-12.
func TestEntangledEntropySelectionFormsAgree(t *testing.T) {
	counts := []qumetry.Counts{
		{"0101": 1024, "1010": 1024, "1111": 2048},
		{"0011": 4096},
		{"0000": 2000, "0001": 2096},
	}

	byRange, err := EntangledEntropy(4096, counts, partition.Range(0, 3), WithWorkers(1))
	require.NoError(t, err)
	byList, err := EntangledEntropy(4096, counts, partition.Registers(2, 0, 1), WithWorkers(1))
	require.NoError(t, err)

	assert.InDelta(t, byRange.Purity, byList.Purity, 1e-12)
	assert.InDelta(t, byRange.PuritySD, byList.PuritySD, 1e-12)
	assert.Equal(t, byRange.RegistersActual, byList.RegistersActual)
}

func TestEntangledEntropyParallelMatchesSerial(t *testing.T) {
	counts := []qumetry.Counts{
		{"0101": 1024, "1010": 1024, "1111": 2048},
		{"0011": 4096},
		{"0000": 2000, "0001": 2096},
		{"1001": 4096},
	}

	serial, err := EntangledEntropy(4096, counts, partition.LastN(2), WithWorkers(1))
	require.NoError(t, err)
	parallel, err := EntangledEntropy(4096, counts, partition.LastN(2), WithWorkers(4))
	require.NoError(t, err)

	require.Len(t, parallel.PurityCells, len(serial.PurityCells))
	for i, v := range serial.PurityCells {
		assert.InDelta(t, v, parallel.PurityCells[i], 1e-12)
	}
	assert.InDelta(t, serial.Purity, parallel.Purity, 1e-12)
}

func TestEntangledEntropyErrors(t *testing.T) {
	_, err := EntangledEntropy(4096, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCounts)

	_, err = EntangledEntropy(4000, bellCounts(2), nil)
	assert.ErrorIs(t, err, ErrShotsMismatch)

	_, err = EntangledEntropy(4096, bellCounts(2), partition.Registers(5))
	assert.ErrorIs(t, err, partition.ErrInvalidRegisters)
}

func TestEntangledEntropyMitigatedComputesBaseline(t *testing.T) {
	counts := bellCounts(4)

	result, err := EntangledEntropyMitigated(4096, counts, partition.Registers(0), WithWorkers(1))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Purity, 1e-12)
	assert.Equal(t, AllSystemSourceIndependent, result.AllSystem.Source)
	assert.InDelta(t, 2.5, result.AllSystem.Purity, 1e-12)
	assert.Equal(t, []int{1, 0}, result.AllSystem.RegistersActual)
	assert.False(t, math.IsNaN(result.MitigatedPurity))
	assert.False(t, math.IsNaN(result.ErrorRate))
}

func TestEntangledEntropyMitigatedReusesBaseline(t *testing.T) {
	counts := bellCounts(2)
	baseline := &AllSystemInfo{
		Source:                "cached",
		Purity:                1,
		Entropy:               0,
		NumClassicalRegisters: 2,
		RegistersActual:       []int{1, 0},
	}

	result, err := EntangledEntropyMitigated(4096, counts, partition.Registers(0),
		WithWorkers(1), WithAllSystem(baseline))
	require.NoError(t, err)

	assert.Equal(t, "cached", result.AllSystem.Source)
	// purity-1 baseline makes mitigation a no-op
	assert.InDelta(t, 0, result.ErrorRate, 1e-12)
	assert.InDelta(t, result.Purity, result.MitigatedPurity, 1e-12)
	assert.InDelta(t, -math.Log2(result.Purity), result.MitigatedEntropy, 1e-12)
}

func TestEntangledEntropyMitigatedNullCounts(t *testing.T) {
	counts := []qumetry.Counts{{}, {}, {}}

	result, err := EntangledEntropyMitigated(4096, counts, nil)
	require.NoError(t, err)

	assert.Equal(t, AllSystemSourceNullCounts, result.AllSystem.Source)
	assert.True(t, math.IsNaN(result.Purity))
	assert.True(t, math.IsNaN(result.Entropy))
	assert.True(t, math.IsNaN(result.PuritySD))
	assert.True(t, math.IsNaN(result.EntropySD))
	assert.True(t, math.IsNaN(result.AllSystem.Purity))
	assert.True(t, math.IsNaN(result.ErrorRate))
	assert.True(t, math.IsNaN(result.MitigatedPurity))
	assert.True(t, math.IsNaN(result.MitigatedEntropy))
	assert.Equal(t, 3, result.CountsNum)
	assert.NotNil(t, result.PurityCells)
}

func TestEntangledEntropyMitigatedBaselineWidthMismatch(t *testing.T) {
	baseline := &AllSystemInfo{
		Source:                "cached",
		Purity:                1,
		NumClassicalRegisters: 3,
	}
	_, err := EntangledEntropyMitigated(4096, bellCounts(2), nil, WithAllSystem(baseline))
	assert.ErrorIs(t, err, ErrWidthMismatch)
}

func TestEntangledEntropyBackendsAgreeEndToEnd(t *testing.T) {
	counts := []qumetry.Counts{
		{"0101": 1024, "1010": 1024, "1111": 2048},
		{"0011": 4096},
	}

	ref, err := EntangledEntropy(4096, counts, partition.Range(-2, 2),
		WithWorkers(1), WithBackend(backend.REFERENCE))
	require.NoError(t, err)
	acc, err := EntangledEntropy(4096, counts, partition.Range(-2, 2),
		WithWorkers(1), WithBackend(backend.ACCELERATED))
	require.NoError(t, err)

	assert.InDelta(t, ref.Purity, acc.Purity, 1e-10)
}

func TestMeanStd(t *testing.T) {
	mean, sd := meanStd(map[int]float64{0: 1, 1: 2, 2: 3, 3: 4})
	assert.InDelta(t, 2.5, mean, 1e-15)
	assert.InDelta(t, math.Sqrt(1.25), sd, 1e-15)

	mean, sd = meanStd(map[int]float64{})
	assert.True(t, math.IsNaN(mean))
	assert.True(t, math.IsNaN(sd))
}
