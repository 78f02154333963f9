// Package parallel distributes per-sample estimator work across a bounded
// set of workers.
//
// Samples are fully independent, so the only synchronization point is the
// final join; each worker writes into its own pre-assigned result slot.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/qumetry/qumetry/logger"
)

// WorkersDistribution resolves a requested worker count. A zero or negative
// request falls back to the default, which keeps a quarter of the CPUs free.
// A request beyond the CPU count is clamped back to the default. 1 means
// fully serial execution.
func WorkersDistribution(requested int) int {
	numCPU := runtime.NumCPU()
	def := 3 * numCPU / 4
	if def < 1 {
		def = 1
	}
	if requested <= 0 {
		return def
	}
	if requested > numCPU {
		log := logger.Logger()
		log.Warn().Int("requested", requested).Int("numCPU", numCPU).
			Msg("requested workers exceed CPU count, using default")
		return def
	}
	return requested
}

// MapIndexed runs fn(0) .. fn(n-1) on up to workers goroutines and waits for
// completion. With workers == 1 the loop runs on the calling goroutine, which
// keeps small inputs deterministic and cheap. The first error cancels the
// remaining work and is returned; callers must not consume partial results
// on error.
func MapIndexed(workers, n int, fn func(i int) error) error {
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}
