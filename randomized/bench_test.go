package randomized

import (
	"math/rand"
	"testing"

	"github.com/qumetry/qumetry/backend"
)

func benchmarkPurityCell(b *testing.B, id backend.ID, width int) {
	rng := rand.New(rand.NewSource(1))
	counts := randomCounts(rng, width)
	registers := make([]int, width)
	for i := range registers {
		registers[i] = width - i - 1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := PurityCell(0, counts, registers, id); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPurityCellReference(b *testing.B) {
	benchmarkPurityCell(b, backend.REFERENCE, 12)
}

func BenchmarkPurityCellAccelerated(b *testing.B) {
	benchmarkPurityCell(b, backend.ACCELERATED, 12)
}

func BenchmarkEchoCellReference(b *testing.B) {
	benchmarkEchoCell(b, backend.REFERENCE)
}

func BenchmarkEchoCellAccelerated(b *testing.B) {
	benchmarkEchoCell(b, backend.ACCELERATED)
}

func benchmarkEchoCell(b *testing.B, id backend.ID) {
	rng := rand.New(rand.NewSource(2))
	first := randomCounts(rng, 12)
	second := randomCounts(rng, 12)
	registers := []int{11, 9, 7, 5, 3, 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EchoCell(0, first, second, registers, id); err != nil {
			b.Fatal(err)
		}
	}
}
