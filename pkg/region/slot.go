package region

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/srediag/shmptr/pkg/ptr"
)

// SlotAt places a ptr.Atomic slot over the word at the given region offset.
// The slot's storage is the shared bytes themselves, so every process that
// maps the region and takes a slot at the same offset operates on the same
// word. The offset must be word-aligned and leave room for one word.
//
// The bytes are reinterpreted, not initialized: a freshly allocated slot
// still holds whatever was there before (zero for a new region, which is a
// legal offset, not null). Use InitNull, or AllocSlot which does it for you.
func SlotAt[T ptr.Wrapped[T]](r *Region, offset uintptr) (*ptr.Atomic[T], error) {
	if r.closed.Load() {
		return nil, ErrRegionClosed
	}
	if offset%wordSize != 0 {
		return nil, fmt.Errorf("region: slot offset %#x is not %d byte aligned", offset, wordSize)
	}
	if offset < headerSize || offset+wordSize > uintptr(len(r.mem)) {
		return nil, fmt.Errorf("region: slot offset %#x out of range", offset)
	}
	return (*ptr.Atomic[T])(unsafe.Pointer(&r.mem[offset])), nil
}

// AllocSlot allocates one word from the arena and returns it as a
// null-initialized atomic slot plus its region offset.
func AllocSlot[T ptr.Wrapped[T]](ctx context.Context, r *Region) (*ptr.Atomic[T], uintptr, error) {
	offset, err := r.Alloc(ctx, wordSize)
	if err != nil {
		return nil, 0, err
	}
	slot, err := SlotAt[T](r, offset)
	if err != nil {
		return nil, 0, err
	}
	slot.InitNull()
	return slot, offset, nil
}
