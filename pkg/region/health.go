package region

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"

	internalshm "github.com/srediag/shmptr/internal/shm"
)

// LivenessCheck returns a healthcheck.Check that fails once the region is
// closed or its backing file has disappeared, for wiring into a process
// health endpoint.
func (r *Region) LivenessCheck() healthcheck.Check {
	return func() error {
		if r.closed.Load() {
			return ErrRegionClosed
		}
		if !internalshm.PathExists(r.path) && !internalshm.PathExists(r.mapped.Path) {
			return fmt.Errorf("region: backing file %s is gone", r.mapped.Path)
		}
		return nil
	}
}
