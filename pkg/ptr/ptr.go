package ptr

// NullPtr is the reserved word meaning "no target". Zero cannot play that
// role here: pointers are stored as offsets, and offset zero is a legal
// location inside the region. The high bits are set and the low bits are
// clear so the sentinel survives tagging in the low alignment bits and is
// never confused with a real offset or address. Every participant attached
// to the same region must agree on this exact value.
const NullPtr uintptr = 0x8000_0000_8000_0000

// Wrapped is the capability contract for word-sized pointer encodings. A
// type P satisfying Wrapped[P] can report its raw stored word, translate it
// to an address valid in the current address space, and be rebuilt from
// either representation.
//
// Implementations must keep FromAddr and Addr exact inverses for every
// non-null value, and must round-trip the stored word bit-exactly through
// FromValue and Value, the null sentinel included. For nested encodings only
// the outermost layer's Addr result is dereferenceable; inner results are
// intermediate values.
//
// Concrete encodings additionally provide a pointer-receiver
// Set(uintptr) that overwrites the stored word in place with FromValue
// semantics. Set is not part of the constraint because the constructors here
// take value receivers, and Go method sets cannot mix the two.
type Wrapped[T any] interface {
	// Value returns the stored word verbatim, untranslated and untagged.
	Value() uintptr
	// Addr returns a word usable as an address in the caller's current
	// address space. If IsNull reports true the result is NullPtr and
	// nothing else about it is meaningful.
	Addr() uintptr
	// FromValue builds an encoding storing the given word verbatim. The
	// receiver only supplies the type; its value is ignored.
	FromValue(uintptr) T
	// FromAddr builds an encoding from a dereferenceable address by
	// applying the inverse of the Addr transform before storing.
	FromAddr(uintptr) T
	// IsNull reports whether the encoding denotes no target. Each layer
	// defines its own check point: PIPtr compares the stored offset,
	// TagPtr strips the tag first.
	IsNull() bool
}

// FromValue builds a T storing the given word verbatim.
func FromValue[T Wrapped[T]](v uintptr) T {
	var z T
	return z.FromValue(v)
}

// FromAddr builds a T from a dereferenceable address in the current address
// space.
func FromAddr[T Wrapped[T]](addr uintptr) T {
	var z T
	return z.FromAddr(addr)
}

// Null builds the canonical null encoding of T. It goes through FromValue,
// never FromAddr: the sentinel must not be run through base translation.
func Null[T Wrapped[T]]() T {
	var z T
	return z.FromValue(NullPtr)
}
