package randomized

import (
	"fmt"
	"math"

	"github.com/qumetry/qumetry/logger"
	"github.com/qumetry/qumetry/partition"

	qumetry "github.com/qumetry/qumetry"
)

// EntangledEntropy estimates the second-order Rényi entanglement entropy of
// the selected subsystem from randomized-measurement counts. A nil selector
// targets the whole system.
func EntangledEntropy(shots int, counts []qumetry.Counts, sel partition.Selector, opts ...Option) (*EntropyResult, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ErrEmptyCounts
	}

	registersDesc, numClassical, err := resolveSelection(shots, counts[0], sel)
	if err != nil {
		return nil, err
	}

	cells, taken, err := entropyCore(shots, counts, registersDesc, cfg.backend, cfg.workers)
	if err != nil {
		return nil, err
	}

	purity, puritySD := meanStd(cells)
	return &EntropyResult{
		Purity:                purity,
		Entropy:               -math.Log2(purity),
		PuritySD:              puritySD,
		EntropySD:             puritySD / math.Ln2 / purity,
		PurityCells:           cells,
		NumClassicalRegisters: numClassical,
		Registers:             requestedRegisters(sel, numClassical),
		RegistersActual:       registersDesc,
		CountsNum:             len(counts),
		TakingTime:            taken,
	}, nil
}

// EntangledEntropyMitigated estimates the entropy with depolarizing error
// mitigation against a whole-system baseline. The baseline is computed
// within the call unless supplied via WithAllSystem. All-null counts yield a
// fully populated NaN sentinel record instead of an error: a circuit that
// produced no results is caller data, not a caller bug.
func EntangledEntropyMitigated(shots int, counts []qumetry.Counts, sel partition.Selector, opts ...Option) (*MitigatedResult, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, ErrEmptyCounts
	}

	for _, c := range counts {
		if len(c) == 0 {
			return nullCountsResult(sel, len(counts)), nil
		}
	}

	registersDesc, numClassical, err := resolveSelection(shots, counts[0], sel)
	if err != nil {
		return nil, err
	}

	cells, taken, err := entropyCore(shots, counts, registersDesc, cfg.backend, cfg.workers)
	if err != nil {
		return nil, err
	}

	allSystem, err := preparingAllSystem(cfg.allSystem, shots, counts, cfg)
	if err != nil {
		return nil, err
	}
	if numClassical != allSystem.NumClassicalRegisters {
		return nil, fmt.Errorf("%w: counts width %d, all-system baseline width %d",
			ErrWidthMismatch, numClassical, allSystem.NumClassicalRegisters)
	}

	purity, puritySD := meanStd(cells)
	mitigation := DepolarizingErrorMitigation(purity, allSystem.Purity, len(registersDesc), numClassical)

	return &MitigatedResult{
		EntropyResult: EntropyResult{
			Purity:                purity,
			Entropy:               -math.Log2(purity),
			PuritySD:              puritySD,
			EntropySD:             puritySD / math.Ln2 / purity,
			PurityCells:           cells,
			NumClassicalRegisters: numClassical,
			Registers:             requestedRegisters(sel, numClassical),
			RegistersActual:       registersDesc,
			CountsNum:             len(counts),
			TakingTime:            taken,
		},
		AllSystem:        *allSystem,
		ErrorRate:        mitigation.ErrorRate,
		MitigatedPurity:  mitigation.MitigatedPurity,
		MitigatedEntropy: mitigation.MitigatedEntropy,
	}, nil
}

// preparingAllSystem reuses a caller-supplied baseline or computes one over
// every register.
func preparingAllSystem(existing *AllSystemInfo, shots int, counts []qumetry.Counts, cfg config) (*AllSystemInfo, error) {
	if existing != nil {
		log := logger.Logger()
		log.Debug().Str("source", existing.Source).Msg("reusing all-system baseline")
		return existing, nil
	}

	registersDesc, numClassical, err := resolveSelection(shots, counts[0], partition.WholeSystem())
	if err != nil {
		return nil, err
	}
	cells, taken, err := entropyCore(shots, counts, registersDesc, cfg.backend, cfg.workers)
	if err != nil {
		return nil, err
	}

	purity, puritySD := meanStd(cells)
	return &AllSystemInfo{
		Source:                AllSystemSourceIndependent,
		Purity:                purity,
		Entropy:               -math.Log2(purity),
		PuritySD:              puritySD,
		EntropySD:             puritySD / math.Ln2 / purity,
		PurityCells:           cells,
		NumClassicalRegisters: numClassical,
		RegistersActual:       registersDesc,
		TakingTime:            taken,
	}, nil
}

func nullCountsResult(sel partition.Selector, countsNum int) *MitigatedResult {
	nan := math.NaN()
	return &MitigatedResult{
		EntropyResult: EntropyResult{
			Purity:      nan,
			Entropy:     nan,
			PuritySD:    nan,
			EntropySD:   nan,
			PurityCells: map[int]float64{},
			CountsNum:   countsNum,
		},
		AllSystem: AllSystemInfo{
			Source:      AllSystemSourceNullCounts,
			Purity:      nan,
			Entropy:     nan,
			PuritySD:    nan,
			EntropySD:   nan,
			PurityCells: map[int]float64{},
		},
		ErrorRate:        nan,
		MitigatedPurity:  nan,
		MitigatedEntropy: nan,
	}
}

// requestedRegisters reports the selection as requested: nil for the whole
// system, the resolved canonical list otherwise. Resolution errors were
// already surfaced by the caller.
func requestedRegisters(sel partition.Selector, numClassical int) []int {
	if sel == nil {
		return nil
	}
	registers, err := sel.Resolve(numClassical)
	if err != nil {
		return nil
	}
	return registers
}
