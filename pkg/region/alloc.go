package region

import (
	"context"
	"fmt"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

const wordSize = 8

// pollTimeout bounds the wait when draining the recycle cache; the cache is
// checked non-empty first, so this only matters when a concurrent take wins.
const pollTimeout = time.Millisecond

// roundUp rounds n up to the next word boundary. Word-aligned offsets keep
// region-embedded atomics legal and leave the low bits free for tagging.
func roundUp(n uint64) uint64 {
	return (n + wordSize - 1) &^ uint64(wordSize - 1)
}

// Alloc claims size bytes of the region and returns their offset from the
// region base. Offsets are word-aligned, start past the header, and can
// never equal the null sentinel (Open rejects region sizes that reach it).
// Allocation is a lock-free bump on the shared cursor, so attached processes
// may allocate concurrently; recycled blocks are reused from a process-local
// cache first.
func (r *Region) Alloc(ctx context.Context, size int) (uintptr, error) {
	if r.closed.Load() {
		return 0, ErrRegionClosed
	}
	if size <= 0 {
		return 0, fmt.Errorf("region: invalid allocation size %d", size)
	}
	rounded := roundUp(uint64(size))

	if off, ok := r.takeFree(rounded); ok {
		r.countAlloc(ctx, rounded)
		return off, nil
	}

	for {
		cur := r.cursor.Load()
		next := cur + rounded
		if next > uint64(len(r.mem)) {
			return 0, fmt.Errorf("%w: need %d bytes, %d left", ErrRegionFull, rounded, uint64(len(r.mem))-cur)
		}
		if r.cursor.CompareAndSwap(cur, next) {
			r.countAlloc(ctx, rounded)
			return uintptr(cur), nil
		}
	}
}

// Recycle returns a previously allocated block to the process-local free
// cache for reuse by later Allocs of the same rounded size. The arena never
// hands memory back to the region itself.
func (r *Region) Recycle(offset uintptr, size int) {
	if r.closed.Load() || size <= 0 {
		return
	}
	rounded := roundUp(uint64(size))
	r.mu.Lock()
	q, ok := r.free[rounded]
	if !ok {
		q = queue.New(16)
		r.free[rounded] = q
	}
	r.mu.Unlock()
	if err := q.Put(uint64(offset)); err == nil {
		regionRecycles.Inc()
	}
}

func (r *Region) takeFree(rounded uint64) (uintptr, bool) {
	r.mu.Lock()
	q, ok := r.free[rounded]
	r.mu.Unlock()
	if !ok || q.Empty() {
		return 0, false
	}
	items, err := q.Poll(1, pollTimeout)
	if err != nil || len(items) == 0 {
		return 0, false
	}
	return uintptr(items[0].(uint64)), true
}

func (r *Region) countAlloc(ctx context.Context, rounded uint64) {
	regionAllocs.Inc()
	regionAllocBytes.Add(float64(rounded))
	if r.allocs != nil {
		r.allocs.Add(ctx, 1)
		r.allocBytes.Add(ctx, int64(rounded))
	}
}

// FreeCached reports how many recycled blocks of the given size are waiting
// in the process-local cache.
func (r *Region) FreeCached(size int) int {
	r.mu.Lock()
	q, ok := r.free[roundUp(uint64(size))]
	r.mu.Unlock()
	if !ok {
		return 0
	}
	return int(q.Len())
}

// Remaining returns the bytes left in the bump arena, not counting the
// recycle cache.
func (r *Region) Remaining() int {
	if r.closed.Load() {
		return 0
	}
	return len(r.mem) - int(r.cursor.Load())
}
