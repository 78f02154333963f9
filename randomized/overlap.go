package randomized

import (
	"fmt"

	"github.com/qumetry/qumetry/partition"

	qumetry "github.com/qumetry/qumetry"
)

// WavefunctionOverlap estimates the overlap |<psi1|psi2>|^2-like echo
// between two states from their randomized-measurement counts. Both count
// sequences must come from the same measurement settings: equal length,
// equal widths, equal shot totals.
func WavefunctionOverlap(shots int, firstCounts, secondCounts []qumetry.Counts, sel partition.Selector, opts ...Option) (*EchoResult, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(firstCounts) == 0 || len(secondCounts) == 0 {
		return nil, ErrEmptyCounts
	}
	if len(firstCounts) != len(secondCounts) {
		return nil, fmt.Errorf("%w: first %d samples, second %d samples",
			ErrLengthMismatch, len(firstCounts), len(secondCounts))
	}
	if s2 := secondCounts[0].Total(); s2 != int64(shots) {
		return nil, fmt.Errorf("%w: shots %d, second sample sum %d", ErrShotsMismatch, shots, s2)
	}

	registersDesc, numClassical, err := resolveSelection(shots, firstCounts[0], sel)
	if err != nil {
		return nil, err
	}
	if w := secondCounts[0].NumClassicalRegisters(); w != numClassical {
		return nil, fmt.Errorf("%w: first %d, second %d", ErrWidthMismatch, numClassical, w)
	}

	cells, taken, err := echoCore(shots, firstCounts, secondCounts, registersDesc, cfg.backend, cfg.workers)
	if err != nil {
		return nil, err
	}

	echo, echoSD := meanStd(cells)
	return &EchoResult{
		Echo:                  echo,
		EchoSD:                echoSD,
		EchoCells:             cells,
		NumClassicalRegisters: numClassical,
		Registers:             requestedRegisters(sel, numClassical),
		RegistersActual:       registersDesc,
		CountsNum:             len(firstCounts),
		TakingTime:            taken,
	}, nil
}
