package shadow

import (
	"fmt"

	"github.com/qumetry/qumetry/backend"
	"github.com/qumetry/qumetry/internal/parallel"
)

// Method selects how ClassicalShadow turns the per-sample snapshots into a
// purity. Both estimators agree analytically; they differ in how the pair
// trace is factored.
type Method uint8

const (
	// MethodPairTrace traces the full-subsystem matrix product of each
	// snapshot pair.
	MethodPairTrace Method = iota
	// MethodRegisterSwap partitions each pair's per-register factors into
	// two halves of alternating ownership and multiplies the per-register
	// traces.
	MethodRegisterSwap
)

func (m Method) String() string {
	switch m {
	case MethodPairTrace:
		return "pair-trace"
	case MethodRegisterSwap:
		return "register-swap"
	default:
		return "invalid"
	}
}

// Option alters the behavior of an estimator call.
type Option func(*config) error

type config struct {
	workers int
	method  Method
}

func newConfig(opts ...Option) (config, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	cfg.workers = parallel.WorkersDistribution(cfg.workers)
	return cfg, nil
}

// WithBackend requests a specific numeric backend. Snapshot reconstruction
// has only the reference implementation, so anything but Reference is a
// hard error rather than a silent fallback.
func WithBackend(id backend.ID) Option {
	return func(c *config) error {
		switch id {
		case backend.UNKNOWN, backend.REFERENCE:
			return nil
		default:
			return fmt.Errorf("%w: %s for classical shadow", backend.ErrUnsupported, id)
		}
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

// WithMethod picks the purity estimator used by ClassicalShadow.
func WithMethod(m Method) Option {
	return func(c *config) error {
		if m > MethodRegisterSwap {
			return fmt.Errorf("invalid shadow method %d", m)
		}
		c.method = m
		return nil
	}
}
