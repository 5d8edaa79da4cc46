package ptr

import (
	"sync/atomic"
)

// Atomic is a single-word slot holding the stored representation of a T,
// accessed only through atomic operations. It is exactly one machine word
// with no extra fields, so it can be placed directly inside a shared region
// and operated on concurrently from every process mapping that region.
//
// The slot moves raw words; it never translates. Loads observe everything
// written before the store that published the word (Go atomics give at least
// the acquire/release pairing this needs), but consistency of the pointee
// itself is the caller's business.
//
// Note that copying an Atomic copies its word non-atomically; share slots by
// pointer, or by mapping the same region bytes.
type Atomic[T Wrapped[T]] struct {
	word atomic.Uintptr
}

// NewAtomic returns a slot initialized with the stored word v.
func NewAtomic[T Wrapped[T]](v uintptr) *Atomic[T] {
	a := &Atomic[T]{}
	a.word.Store(v)
	return a
}

// NewAtomicFromAddr returns a slot initialized from a dereferenceable
// address, translated through T's FromAddr.
func NewAtomicFromAddr[T Wrapped[T]](addr uintptr) *Atomic[T] {
	var z T
	return NewAtomic[T](z.FromAddr(addr).Value())
}

// NullAtomic returns a slot holding the sentinel.
func NullAtomic[T Wrapped[T]]() *Atomic[T] {
	return NewAtomic[T](NullPtr)
}

// InitNull resets the slot to the sentinel. Intended for slots whose storage
// is freshly claimed region memory rather than built by NewAtomic; the Go
// zero word is a legal offset, not null, so region-embedded slots need this
// before first use.
func (a *Atomic[T]) InitNull() { a.word.Store(NullPtr) }

// LoadValue atomically reads the raw stored word.
func (a *Atomic[T]) LoadValue() uintptr { return a.word.Load() }

// Load atomically reads the stored word and wraps it in a T. No
// translation happens here.
func (a *Atomic[T]) Load() T {
	var z T
	return z.FromValue(a.word.Load())
}

// LoadAddr atomically reads the stored word and translates it to an address
// in the caller's current address space.
func (a *Atomic[T]) LoadAddr() uintptr { return a.Load().Addr() }

// Store atomically writes a raw stored word. The caller supplies the stored
// representation (an offset for PIPtr), never an address-space-local
// address.
func (a *Atomic[T]) Store(v uintptr) { a.word.Store(v) }

// CompareExchange atomically replaces the stored word with new if it
// currently equals old. On success it returns (old, true); on failure the
// word is untouched and the observed current word comes back with false, so
// callers can drive their own retry loop. Both arguments and both results
// are stored words: address-space-local addresses must never be compared or
// published through the slot.
func (a *Atomic[T]) CompareExchange(old, new uintptr) (uintptr, bool) {
	for {
		if a.word.CompareAndSwap(old, new) {
			return old, true
		}
		if cur := a.word.Load(); cur != old {
			return cur, false
		}
		// The word changed away and back between the CAS and the
		// load; try the CAS again so failure always reports a word
		// that differs from old.
	}
}
