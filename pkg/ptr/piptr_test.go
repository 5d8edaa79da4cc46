package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixBase registers a base provider returning the address stored in *base,
// so tests can move the mapping between translations the way a second
// address space would see it.
func fixBase(base *uintptr) {
	RegisterBase(BaseFunc(func() uintptr { return *base }))
}

func TestPIPtrRoundTrip(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	for _, addr := range []uintptr{0x1000, 0x1040, 0x1fff, 0x7000_0000} {
		p := FromAddr[PIPtr](addr)
		assert.Equal(t, addr, p.Addr(), "addr %#x must round-trip under a fixed base", addr)
	}
	for _, v := range []uintptr{0, 0x40, 0xdead_beef, NullPtr} {
		p := FromValue[PIPtr](v)
		assert.Equal(t, v, p.Value(), "value %#x must be stored verbatim", v)
	}
}

func TestPIPtrCrossSpaceTranslation(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	// Producer maps the region at 0x1000 and stores a pointer to 0x1040.
	p := FromAddr[PIPtr](0x1040)
	require.Equal(t, uintptr(0x40), p.Value())

	// Consumer maps the same region at 0x5000 and reads the same word.
	base = 0x5000
	assert.Equal(t, uintptr(0x5040), p.Addr())

	// Generalized: offset o produced under b1 resolves to o + b2 under b2.
	base = 0x1000
	o := FromAddr[PIPtr](0x1234).Value()
	base = 0x9_0000
	assert.Equal(t, o+0x9_0000, FromValue[PIPtr](o).Addr())
}

func TestPIPtrNullPreservation(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	n := FromAddr[PIPtr](NullPtr)
	assert.Equal(t, NullPtr, n.Value(), "FromAddr must store the sentinel untranslated")

	for _, b := range []uintptr{0, 0x1000, 0xffff_f000} {
		base = b
		assert.Equal(t, NullPtr, n.Addr(), "Addr must pass the sentinel through under base %#x", b)
	}
}

func TestPIPtrIsNull(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	assert.True(t, Null[PIPtr]().IsNull())
	assert.True(t, FromValue[PIPtr](NullPtr).IsNull())
	assert.Equal(t, Null[PIPtr](), FromValue[PIPtr](NullPtr))
	assert.False(t, FromValue[PIPtr](0).IsNull(), "offset zero is a legal location, not null")
	assert.False(t, FromValue[PIPtr](0x40).IsNull())

	// The check is on the stored offset, not the translated address: an
	// offset that merely translates to the sentinel is not null.
	base = NullPtr - 0x40
	assert.False(t, FromValue[PIPtr](0x40).IsNull())
}

func TestPIPtrSet(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	var p PIPtr
	p.Set(0x40)
	assert.Equal(t, uintptr(0x40), p.Value())
	p.Set(NullPtr)
	assert.True(t, p.IsNull())
}
