package region

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	regionOpens = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shmptr_region_opens_total",
		Help: "Total number of shared regions mapped by this process.",
	})
	regionAllocs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shmptr_region_allocs_total",
		Help: "Total number of arena allocations.",
	})
	regionAllocBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shmptr_region_alloc_bytes_total",
		Help: "Total bytes handed out by the arena, after rounding.",
	})
	regionRecycles = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shmptr_region_recycles_total",
		Help: "Total number of blocks returned to the recycle cache.",
	})
)

func init() {
	prometheus.MustRegister(regionOpens, regionAllocs, regionAllocBytes, regionRecycles)
}
