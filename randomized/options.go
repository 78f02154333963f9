package randomized

import (
	"github.com/qumetry/qumetry/backend"
	"github.com/qumetry/qumetry/internal/parallel"
)

// Option alters the behavior of an estimator call.
type Option func(*config) error

type config struct {
	backend   backend.ID
	workers   int
	allSystem *AllSystemInfo
}

func newConfig(opts ...Option) (config, error) {
	cfg := config{backend: backend.Default()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	cfg.workers = parallel.WorkersDistribution(cfg.workers)
	return cfg, nil
}

// WithBackend requests a specific numeric backend. An unavailable backend
// falls back to the reference implementation with a warning.
func WithBackend(id backend.ID) Option {
	return func(c *config) error {
		c.backend = id
		return nil
	}
}

// WithWorkers fixes the number of parallel workers; 1 forces fully serial
// execution.
func WithWorkers(n int) Option {
	return func(c *config) error {
		c.workers = n
		return nil
	}
}

// WithAllSystem supplies a previously computed all-system baseline to
// EntangledEntropyMitigated, skipping the whole-system purity pass. The
// baseline does not depend on the subsystem selection, so one baseline
// amortizes over any number of partitions of the same counts.
func WithAllSystem(info *AllSystemInfo) Option {
	return func(c *config) error {
		c.allSystem = info
		return nil
	}
}
