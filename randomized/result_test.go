package randomized

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSystemInfoRoundTrip(t *testing.T) {
	info := AllSystemInfo{
		Source:                AllSystemSourceIndependent,
		Purity:                0.92,
		Entropy:               0.12029423371771177,
		PuritySD:              0.01,
		EntropySD:             0.015,
		PurityCells:           map[int]float64{0: 0.91, 1: 0.93},
		NumClassicalRegisters: 8,
		RegistersActual:       []int{7, 6, 5, 4, 3, 2, 1, 0},
		TakingTime:            1.25,
	}

	var buf bytes.Buffer
	written, err := info.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), written)

	var restored AllSystemInfo
	read, err := restored.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, written, read)

	if diff := cmp.Diff(info, restored); diff != "" {
		t.Errorf("baseline mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestAllSystemInfoWriteDeterministic(t *testing.T) {
	info := AllSystemInfo{
		Source:      AllSystemSourceIndependent,
		Purity:      0.5,
		PurityCells: map[int]float64{3: 0.25, 1: 0.5, 2: 0.75},
	}

	var first, second bytes.Buffer
	_, err := info.WriteTo(&first)
	require.NoError(t, err)
	_, err = info.WriteTo(&second)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestAllSystemInfoReadFromGarbage(t *testing.T) {
	var restored AllSystemInfo
	_, err := restored.ReadFrom(bytes.NewReader([]byte{0xff, 0x00, 0x13}))
	assert.Error(t, err)
}
