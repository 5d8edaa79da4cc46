package ptr

// PIPtr is a position-independent pointer: one machine word holding an
// offset from the shared region base. The stored word is identical in every
// address space that maps the region; only Addr and FromAddr consult the
// base, and they query it fresh on every call.
type PIPtr uintptr

// Value returns the stored offset.
func (p PIPtr) Value() uintptr { return uintptr(p) }

// Addr returns the offset translated under the current mapping's base. The
// sentinel passes through untouched so no arithmetic ever runs near its bit
// pattern.
func (p PIPtr) Addr() uintptr {
	if uintptr(p) == NullPtr {
		return NullPtr
	}
	return uintptr(p) + dataBase()
}

// FromValue stores v verbatim. No base query, no arithmetic.
func (PIPtr) FromValue(v uintptr) PIPtr { return PIPtr(v) }

// FromAddr stores addr minus the current mapping's base. The sentinel is
// stored as-is.
func (PIPtr) FromAddr(addr uintptr) PIPtr {
	if addr == NullPtr {
		return PIPtr(NullPtr)
	}
	return PIPtr(addr - dataBase())
}

// Set overwrites the stored offset with v verbatim.
func (p *PIPtr) Set(v uintptr) { *p = PIPtr(v) }

// IsNull compares the stored offset against the sentinel. The check is on
// the stored word, not the translated address: a null test must work before
// any base provider is registered.
func (p PIPtr) IsNull() bool { return uintptr(p) == NullPtr }
