// Package shm contains platform-specific helpers for mapping shared memory
// regions.
package shm

import "errors"

// ErrNoShmSpace is returned when /dev/shm does not have enough free space
// left for the requested region.
var ErrNoShmSpace = errors.New("shm: not enough space left on /dev/shm")

// MappedRegion represents a memory-mapped shared region.
type MappedRegion struct {
	Data []byte
	Size int
	Path string
	fd   int
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	// Path is the backing file. Relative paths are resolved under
	// /dev/shm.
	Path string
	// Size is the region size in bytes.
	Size int
	// Create makes the backing file and sizes it; when false the file
	// must already exist with at least Size bytes.
	Create bool
}

// Function implementations are provided in platform-specific files (e.g.
// platform_linux.go, platform_other.go).
