package parallel

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkersDistribution(t *testing.T) {
	numCPU := runtime.NumCPU()
	def := 3 * numCPU / 4
	if def < 1 {
		def = 1
	}

	assert.Equal(t, def, WorkersDistribution(0))
	assert.Equal(t, def, WorkersDistribution(-3))
	assert.Equal(t, 1, WorkersDistribution(1))
	assert.Equal(t, def, WorkersDistribution(numCPU+1))
	if numCPU >= 2 {
		assert.Equal(t, 2, WorkersDistribution(2))
	}
}

func TestMapIndexedSerial(t *testing.T) {
	got := make([]int, 8)
	err := MapIndexed(1, len(got), func(i int) error {
		got[i] = i * i
		return nil
	})
	require.NoError(t, err)
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
}

func TestMapIndexedParallelMatchesSerial(t *testing.T) {
	const n = 100
	serial := make([]int, n)
	parallel := make([]int, n)

	require.NoError(t, MapIndexed(1, n, func(i int) error {
		serial[i] = 3*i + 1
		return nil
	}))
	require.NoError(t, MapIndexed(4, n, func(i int) error {
		parallel[i] = 3*i + 1
		return nil
	}))
	assert.Equal(t, serial, parallel)
}

func TestMapIndexedError(t *testing.T) {
	errBoom := errors.New("boom")

	err := MapIndexed(1, 5, func(i int) error {
		if i == 3 {
			return errBoom
		}
		return nil
	})
	assert.ErrorIs(t, err, errBoom)

	var calls atomic.Int64
	err = MapIndexed(4, 50, func(i int) error {
		calls.Add(1)
		if i%7 == 0 {
			return errBoom
		}
		return nil
	})
	assert.ErrorIs(t, err, errBoom)
	assert.LessOrEqual(t, calls.Load(), int64(50))
}

func TestMapIndexedEmpty(t *testing.T) {
	assert.NoError(t, MapIndexed(4, 0, func(i int) error {
		t.Fatal("must not be called")
		return nil
	}))
}
