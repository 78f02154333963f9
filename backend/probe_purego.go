//go:build purego

package backend

// Under the purego tag only the reference implementation is offered, which
// exercises the same fallback estimators take when acceleration is missing.
func acceleratedAvailable() bool { return false }
