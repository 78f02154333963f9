//go:build !purego

package backend

func acceleratedAvailable() bool { return true }
