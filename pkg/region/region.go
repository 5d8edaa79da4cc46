// Package region manages named shared memory regions that back
// position-independent pointers: it maps the region, serves as the base
// address provider for pkg/ptr, and hands out offsets guaranteed never to
// collide with the null sentinel.
package region

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/Workiva/go-datastructures/queue"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	internalshm "github.com/srediag/shmptr/internal/shm"
	"github.com/srediag/shmptr/pkg/ptr"
)

// Region header layout. The header lives at the start of the mapped bytes
// and is shared by every process attached to the region, so the allocation
// cursor must only ever be touched atomically.
const (
	regionMagic   = uint32(0x53505452) // "SPTR"
	regionVersion = uint16(1)

	headerSize       = 64
	magicFieldOffset = 0
	versionOffset    = 4
	cursorOffset     = 8
)

var (
	// ErrRegionClosed is returned by operations on a closed region.
	ErrRegionClosed = errors.New("region: closed")
	// ErrRegionFull is returned when the arena has no room left.
	ErrRegionFull = errors.New("region: arena full")
	// ErrBadHeader is returned when attaching a region whose header does
	// not carry the expected magic and version.
	ErrBadHeader = errors.New("region: bad header")
	// ErrRegionTooLarge rejects sizes whose offsets could reach the null
	// sentinel.
	ErrRegionTooLarge = errors.New("region: size would collide with the null sentinel")
)

// Options configures Open.
type Options struct {
	// Path identifies the backing file; relative paths land on /dev/shm.
	Path string
	// Size is the region size in bytes, header included.
	Size int
	// Create initializes a fresh region instead of attaching an existing
	// one.
	Create bool
	// RemoveOnClose unlinks the backing file when the last handle in
	// this process closes.
	RemoveOnClose bool
	// Meter and Tracer, when set, instrument Open/Alloc with
	// OpenTelemetry. Both are optional.
	Meter  metric.Meter
	Tracer trace.Tracer
}

// A Region is one attached mapping of a named shared region. It satisfies
// ptr.BaseProvider, so it can be handed straight to ptr.RegisterBase.
type Region struct {
	path          string
	mem           []byte
	mapped        *internalshm.MappedRegion
	removeOnClose bool

	cursor *atomic.Uint64 // shared, lives inside the header

	mu   sync.Mutex
	free map[uint64]*queue.Queue // process-local recycle cache, by rounded size

	refs   atomic.Int64
	closed atomic.Bool

	tracer     trace.Tracer
	allocs     metric.Int64Counter
	allocBytes metric.Int64Counter
}

var _ ptr.BaseProvider = (*Region)(nil)

// regions dedups attachments: two Opens of the same path in one process
// share one mapping.
var regions = cmap.New[*Region]()

// Open creates or attaches the named shared region. Opening the same path
// twice in one process returns the same *Region with its reference count
// bumped; each handle must be Closed.
func Open(ctx context.Context, opts Options) (*Region, error) {
	if opts.Size < headerSize {
		return nil, fmt.Errorf("region: size %d is smaller than the %d byte header", opts.Size, headerSize)
	}
	if uintptr(opts.Size) >= ptr.NullPtr {
		return nil, ErrRegionTooLarge
	}
	if opts.Tracer != nil {
		var span trace.Span
		ctx, span = opts.Tracer.Start(ctx, "region.Open")
		defer span.End()
		_ = ctx
	}

	if r, ok := regions.Get(opts.Path); ok {
		r.refs.Add(1)
		return r, nil
	}

	mapped, err := internalshm.MapRegion(internalshm.MapOptions{
		Path:   opts.Path,
		Size:   opts.Size,
		Create: opts.Create,
	})
	if err != nil {
		return nil, err
	}
	r := &Region{
		path:          opts.Path,
		mem:           mapped.Data,
		mapped:        mapped,
		removeOnClose: opts.RemoveOnClose,
		cursor:        (*atomic.Uint64)(unsafe.Pointer(&mapped.Data[cursorOffset])),
		free:          make(map[uint64]*queue.Queue),
		tracer:        opts.Tracer,
	}
	r.refs.Store(1)
	if opts.Create {
		r.initHeader()
	} else if err := r.checkHeader(); err != nil {
		_ = internalshm.UnmapRegion(mapped)
		return nil, err
	}
	if opts.Meter != nil {
		r.allocs, _ = opts.Meter.Int64Counter("shmptr.region.allocs")
		r.allocBytes, _ = opts.Meter.Int64Counter("shmptr.region.alloc_bytes")
	}
	if !regions.SetIfAbsent(opts.Path, r) {
		// Lost the race to a concurrent Open of the same path.
		_ = internalshm.UnmapRegion(mapped)
		other, _ := regions.Get(opts.Path)
		other.refs.Add(1)
		return other, nil
	}
	regionOpens.Inc()
	return r, nil
}

func (r *Region) initHeader() {
	binary.LittleEndian.PutUint32(r.mem[magicFieldOffset:], regionMagic)
	binary.LittleEndian.PutUint16(r.mem[versionOffset:], regionVersion)
	r.cursor.Store(headerSize)
}

func (r *Region) checkHeader() error {
	magic := binary.LittleEndian.Uint32(r.mem[magicFieldOffset:])
	version := binary.LittleEndian.Uint16(r.mem[versionOffset:])
	if magic != regionMagic || version != regionVersion {
		return fmt.Errorf("%w: magic %#x version %d", ErrBadHeader, magic, version)
	}
	return nil
}

// Path returns the backing file path.
func (r *Region) Path() string { return r.path }

// Size returns the region size in bytes.
func (r *Region) Size() int { return len(r.mem) }

// Bytes returns the mapped bytes of the region. The slice aliases shared
// memory; concurrent writers in other processes are visible through it.
func (r *Region) Bytes() []byte { return r.mem }

// DataBase returns the address at which this process mapped the region.
// Implements ptr.BaseProvider: translation of a PIPtr read from the region
// resolves against this mapping. Must not be called after Close.
func (r *Region) DataBase() uintptr {
	return uintptr(unsafe.Pointer(&r.mem[0]))
}

// Close releases one handle. The last Close in the process unmaps the
// region and, if requested, removes the backing file.
func (r *Region) Close() error {
	if r.refs.Add(-1) > 0 {
		return nil
	}
	if !r.closed.CompareAndSwap(false, true) {
		return ErrRegionClosed
	}
	regions.Remove(r.path)
	err := internalshm.UnmapRegion(r.mapped)
	if r.removeOnClose {
		if rmErr := internalshm.RemoveRegion(r.mapped); err == nil {
			err = rmErr
		}
	}
	return err
}
