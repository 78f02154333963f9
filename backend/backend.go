// Package backend enumerates the numeric backends available to the
// estimators: a portable reference implementation and an accelerated one
// working on packed bitstrings.
//
// Availability is probed once at process start and cached; estimators asked
// for an unavailable backend fall back to Reference with a warning instead
// of failing.
package backend

import (
	"errors"
	"fmt"
)

// ID represents a unique ID for a numeric backend
type ID uint8

const (
	UNKNOWN ID = iota
	REFERENCE
	ACCELERATED
)

// ErrUnsupported is returned when an explicitly requested backend has no
// implementation for the invoked estimator.
var ErrUnsupported = errors.New("backend not implemented for this estimator")

// Implemented return the list of numeric backends implemented in qumetry
func Implemented() []ID {
	return []ID{REFERENCE, ACCELERATED}
}

// String returns the string representation of a backend
func (id ID) String() string {
	switch id {
	case REFERENCE:
		return "reference"
	case ACCELERATED:
		return "accelerated"
	default:
		return "unknown"
	}
}

// IDFromString returns the backend whose String matches s
func IDFromString(s string) (ID, error) {
	for _, id := range Implemented() {
		if id.String() == s {
			return id, nil
		}
	}
	return UNKNOWN, fmt.Errorf("unknown backend %q", s)
}

// available is fixed at init. The accelerated backend is always compiled in;
// the probe mirrors the import check the estimators were designed around and
// keeps the fallback path testable.
var available = map[ID]bool{
	REFERENCE:   true,
	ACCELERATED: acceleratedAvailable(),
}

// Available reports whether id can be used in this process.
func Available(id ID) bool {
	return available[id]
}

// Default returns the preferred backend among the available ones.
func Default() ID {
	if available[ACCELERATED] {
		return ACCELERATED
	}
	return REFERENCE
}
