package ptr

// TagMask selects the bits of a TagPtr word that carry the tag. Word
// alignment of allocations leaves the low three bits of every offset clear,
// and the sentinel's low bits are clear too, so tagging never corrupts
// either.
const TagMask uintptr = 0x7

// TagPtr packs a small tag into the low alignment bits of an inner encoding
// P. It layers on the same contract it consumes: IsNull strips the tag and
// delegates, Addr strips the tag and delegates, and only this outermost
// layer's Addr is dereferenceable.
type TagPtr[P Wrapped[P]] uintptr

// Value returns the stored word, tag bits included.
func (t TagPtr[P]) Value() uintptr { return uintptr(t) }

// Inner returns the wrapped encoding with the tag stripped.
func (t TagPtr[P]) Inner() P {
	var z P
	return z.FromValue(uintptr(t) &^ TagMask)
}

// Tag returns the tag bits.
func (t TagPtr[P]) Tag() uintptr { return uintptr(t) & TagMask }

// WithTag returns a copy of t carrying the given tag. Bits of tag outside
// TagMask are discarded.
func (t TagPtr[P]) WithTag(tag uintptr) TagPtr[P] {
	return TagPtr[P](uintptr(t)&^TagMask | tag&TagMask)
}

// Addr translates the untagged inner encoding.
func (t TagPtr[P]) Addr() uintptr { return t.Inner().Addr() }

// FromValue stores v verbatim, tag bits included.
func (TagPtr[P]) FromValue(v uintptr) TagPtr[P] { return TagPtr[P](v) }

// FromAddr builds an untagged TagPtr from a dereferenceable address by
// running the inner encoding's inverse transform. Apply WithTag afterwards
// to tag it.
func (TagPtr[P]) FromAddr(addr uintptr) TagPtr[P] {
	var z P
	return TagPtr[P](z.FromAddr(addr).Value())
}

// Set overwrites the stored word with v verbatim.
func (t *TagPtr[P]) Set(v uintptr) { *t = TagPtr[P](v) }

// IsNull strips the tag, then asks the inner encoding.
func (t TagPtr[P]) IsNull() bool { return t.Inner().IsNull() }
