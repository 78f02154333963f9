package randomized

import (
	"math"
	"math/bits"

	"github.com/bits-and-blooms/bitset"

	qumetry "github.com/qumetry/qumetry"
)

// packedCounts is the accelerated representation of a collapsed histogram:
// each restricted bitstring becomes a fixed number of 64-bit words, so the
// pairwise Hamming distance reduces to XOR plus popcount regardless of
// subsystem width.
type packedCounts struct {
	words [][]uint64
	probs []float64
}

func packCounts(restricted qumetry.Counts, subsystemSize, shots int) packedCounts {
	pc := packedCounts{
		words: make([][]uint64, 0, len(restricted)),
		probs: make([]float64, 0, len(restricted)),
	}
	for s, n := range restricted {
		b := bitset.New(uint(subsystemSize))
		for i := 0; i < len(s); i++ {
			if s[i] == '1' {
				b.Set(uint(i))
			}
		}
		pc.words = append(pc.words, b.Bytes())
		pc.probs = append(pc.probs, float64(n)/float64(shots))
	}
	return pc
}

func packedHamming(a, b []uint64) int {
	d := 0
	for i := range a {
		d += bits.OnesCount64(a[i] ^ b[i])
	}
	return d
}

// ensembleWeights precomputes 2^subsystemSize * (-2)^(-d) for every possible
// Hamming distance d.
func ensembleWeights(subsystemSize int) []float64 {
	w := make([]float64, subsystemSize+1)
	for d := 0; d <= subsystemSize; d++ {
		w[d] = math.Pow(2, float64(subsystemSize)) * math.Pow(-2, -float64(d))
	}
	return w
}

// pairSum accumulates the ensemble cells over every ordered pair drawn from
// first x second.
func pairSum(first, second packedCounts, weights []float64) float64 {
	var sum float64
	for i, wi := range first.words {
		pi := first.probs[i]
		for j, wj := range second.words {
			sum += weights[packedHamming(wi, wj)] * pi * second.probs[j]
		}
	}
	return sum
}

func purityCellAccelerated(singleCounts qumetry.Counts, numClassical int, registersDesc []int) (float64, error) {
	restricted, err := collapse(singleCounts, numClassical, registersDesc)
	if err != nil {
		return 0, err
	}
	shots := int(singleCounts.Total())
	packed := packCounts(restricted, len(registersDesc), shots)
	return pairSum(packed, packed, ensembleWeights(len(registersDesc))), nil
}

func echoCellAccelerated(firstCounts, secondCounts qumetry.Counts, numClassical int, registersDesc []int) (float64, error) {
	firstRestricted, err := collapse(firstCounts, numClassical, registersDesc)
	if err != nil {
		return 0, err
	}
	secondRestricted, err := collapse(secondCounts, numClassical, registersDesc)
	if err != nil {
		return 0, err
	}
	shots := int(firstCounts.Total())
	subsystemSize := len(registersDesc)
	return pairSum(
		packCounts(firstRestricted, subsystemSize, shots),
		packCounts(secondRestricted, subsystemSize, shots),
		ensembleWeights(subsystemSize),
	), nil
}
