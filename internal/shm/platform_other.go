//go:build !linux

package shm

import "errors"

var errUnsupported = errors.New("shm: shared memory mapping is only implemented on linux")

// MapRegion maps or creates a shared memory region. Not implemented on this
// platform.
func MapRegion(opts MapOptions) (*MappedRegion, error) {
	return nil, errUnsupported
}

// UnmapRegion unmaps and closes the shared memory region. Not implemented on
// this platform.
func UnmapRegion(region *MappedRegion) error {
	return errUnsupported
}

// RemoveRegion deletes the backing file. Not implemented on this platform.
func RemoveRegion(region *MappedRegion) error {
	return errUnsupported
}
