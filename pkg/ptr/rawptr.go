package ptr

// RawPtr is the identity encoding for ordinary, non-relocated pointers:
// stored word and address are the same thing. It exists so generic code
// written against Wrapped also handles plain pointers without a special
// case.
type RawPtr uintptr

// Value returns the stored word.
func (p RawPtr) Value() uintptr { return uintptr(p) }

// Addr returns the stored word; no translation applies.
func (p RawPtr) Addr() uintptr { return uintptr(p) }

// FromValue stores v verbatim.
func (RawPtr) FromValue(v uintptr) RawPtr { return RawPtr(v) }

// FromAddr stores addr verbatim; no translation applies.
func (RawPtr) FromAddr(addr uintptr) RawPtr { return RawPtr(addr) }

// Set overwrites the stored word with v.
func (p *RawPtr) Set(v uintptr) { *p = RawPtr(v) }

// IsNull compares the stored word against the sentinel.
func (p RawPtr) IsNull() bool { return uintptr(p) == NullPtr }
