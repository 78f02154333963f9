package randomized

import (
	"io"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// EntropyResult is the quantity record of the unmitigated entangled-entropy
// estimator. PurityCells is keyed by sample index and owned by the record.
type EntropyResult struct {
	Purity    float64 `cbor:"purity"`
	Entropy   float64 `cbor:"entropy"`
	PuritySD  float64 `cbor:"puritySD"`
	EntropySD float64 `cbor:"entropySD"`

	PurityCells map[int]float64 `cbor:"purityCells"`

	NumClassicalRegisters int   `cbor:"numClassicalRegisters"`
	Registers             []int `cbor:"registers"`
	RegistersActual       []int `cbor:"registersActual"`

	CountsNum  int     `cbor:"countsNum"`
	TakingTime float64 `cbor:"takingTime"`
}

// Sources of the all-system baseline used by the mitigated estimator.
const (
	// AllSystemSourceIndependent marks a baseline computed within the call.
	AllSystemSourceIndependent = "independent"
	// AllSystemSourceNullCounts marks the sentinel record returned for
	// all-null counts.
	AllSystemSourceNullCounts = "null_counts"
)

// AllSystemInfo bundles the whole-system purity baseline. It is independent
// of any subsystem selection, so callers amortizing many partitions over the
// same counts can compute it once and pass it back via WithAllSystem, or
// persist it with WriteTo and restore it with ReadFrom.
type AllSystemInfo struct {
	Source string `cbor:"source"`

	Purity    float64 `cbor:"purityAllSys"`
	Entropy   float64 `cbor:"entropyAllSys"`
	PuritySD  float64 `cbor:"puritySDAllSys"`
	EntropySD float64 `cbor:"entropySDAllSys"`

	PurityCells map[int]float64 `cbor:"purityCellsAllSys"`

	NumClassicalRegisters int   `cbor:"numClassicalRegistersAllSys"`
	RegistersActual       []int `cbor:"registersActualAllSys"`

	TakingTime float64 `cbor:"takingTimeAllSys"`
}

// MitigatedResult extends EntropyResult with the all-system baseline and the
// depolarizing-mitigation outputs.
type MitigatedResult struct {
	EntropyResult

	AllSystem AllSystemInfo `cbor:"allSystem"`

	ErrorRate        float64 `cbor:"errorRate"`
	MitigatedPurity  float64 `cbor:"mitigatedPurity"`
	MitigatedEntropy float64 `cbor:"mitigatedEntropy"`
}

// EchoResult is the quantity record of the wavefunction-overlap estimator.
type EchoResult struct {
	Echo   float64 `cbor:"echo"`
	EchoSD float64 `cbor:"echoSD"`

	EchoCells map[int]float64 `cbor:"echoCells"`

	NumClassicalRegisters int   `cbor:"numClassicalRegisters"`
	Registers             []int `cbor:"registers"`
	RegistersActual       []int `cbor:"registersActual"`

	CountsNum  int     `cbor:"countsNum"`
	TakingTime float64 `cbor:"takingTime"`
}

// WriteTo serializes the baseline in deterministic CBOR.
func (info *AllSystemInfo) WriteTo(w io.Writer) (int64, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	if err := em.NewEncoder(cw).Encode(info); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// ReadFrom restores a baseline written by WriteTo.
func (info *AllSystemInfo) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	if err := cbor.NewDecoder(cr).Decode(info); err != nil {
		return cr.n, err
	}
	return cr.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// meanStd returns the arithmetic mean and population standard deviation of
// the cell values.
func meanStd(cells map[int]float64) (float64, float64) {
	if len(cells) == 0 {
		return math.NaN(), math.NaN()
	}
	var sum float64
	for _, v := range cells {
		sum += v
	}
	mean := sum / float64(len(cells))

	var sq float64
	for _, v := range cells {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(cells)))
}
