// Package ptr provides pointer encodings for data structures that live in a
// shared memory region mapped at a different base address in every process
// that attaches it.
//
// A raw address is only meaningful inside the address space that produced it.
// PIPtr instead stores an offset from the region base and translates to and
// from a dereferenceable address on demand, using the base reported by the
// process-wide BaseProvider. The same stored word therefore resolves to the
// correct address in every mapping of the region.
//
// The Wrapped constraint describes any word-sized pointer encoding, so
// generic code (most importantly the Atomic slot) works uniformly over
// position-independent, plain, tagged, or user-defined encodings.
//
// Example usage:
//
//	ptr.RegisterBase(region) // region implements ptr.BaseProvider
//
//	p := ptr.FromAddr[ptr.PIPtr](addr) // stores addr - base
//	slot.Store(p.Value())              // publish the offset
//	...
//	addr2 := slot.LoadAddr()           // offset + current mapping's base
//
// See README.md for details.
package ptr
