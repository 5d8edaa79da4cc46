//go:build linux

package shm

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// MapRegion maps or creates a shared memory region (Linux implementation).
func MapRegion(opts MapOptions) (*MappedRegion, error) {
	path := opts.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join("/dev/shm", path)
	}
	flags := unix.O_RDWR
	if opts.Create {
		if !CanCreateOnDevShm(uint64(opts.Size), path) {
			return nil, fmt.Errorf("%w: path %s, size %d", ErrNoShmSpace, path, opts.Size)
		}
		_ = os.MkdirAll(filepath.Dir(path), os.ModePerm)
		flags |= unix.O_CREAT
	}
	fd, err := unix.Open(path, flags, 0600)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if opts.Create {
		if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("ftruncate: %w", err)
		}
	}
	data, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &MappedRegion{
		Data: data,
		Size: opts.Size,
		Path: path,
		fd:   fd,
	}, nil
}

// UnmapRegion unmaps and closes the shared memory region (Linux
// implementation).
func UnmapRegion(region *MappedRegion) error {
	if region == nil || region.Data == nil {
		return nil
	}
	if err := unix.Munmap(region.Data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	region.Data = nil
	if err := unix.Close(region.fd); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// RemoveRegion deletes the backing file so the region name can be reused.
func RemoveRegion(region *MappedRegion) error {
	if region == nil {
		return nil
	}
	return os.Remove(region.Path)
}
