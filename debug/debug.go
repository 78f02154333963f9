//go:build !debug

// Package debug exposes the build-time debug flag.
package debug

const Debug = false
