package ptr

import (
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicStoreLoad(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	a := NullAtomic[PIPtr]()
	assert.Equal(t, NullPtr, a.LoadValue())

	a.Store(0x40)
	assert.Equal(t, uintptr(0x40), a.LoadValue())
	assert.Equal(t, PIPtr(0x40), a.Load())
	assert.Equal(t, uintptr(0x1040), a.LoadAddr())

	// The slot holds offsets, so the same word resolves differently in a
	// differently-based mapping.
	base = 0x5000
	assert.Equal(t, uintptr(0x5040), a.LoadAddr())
}

func TestAtomicNull(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	a := NullAtomic[PIPtr]()
	assert.Equal(t, NullPtr, a.LoadValue())
	assert.True(t, a.Load().IsNull())
	assert.Equal(t, NullPtr, a.LoadAddr(), "the sentinel must never pick up a base")

	a.Store(0x40)
	a.InitNull()
	assert.Equal(t, NullPtr, a.LoadValue())
}

func TestAtomicFromAddr(t *testing.T) {
	base := uintptr(0x1000)
	fixBase(&base)

	a := NewAtomicFromAddr[PIPtr](0x1040)
	assert.Equal(t, uintptr(0x40), a.LoadValue())

	n := NewAtomicFromAddr[PIPtr](NullPtr)
	assert.Equal(t, NullPtr, n.LoadValue())
}

func TestAtomicCompareExchange(t *testing.T) {
	a := NewAtomic[RawPtr](0x40)

	prev, ok := a.CompareExchange(0x40, 0x80)
	require.True(t, ok)
	assert.Equal(t, uintptr(0x40), prev)
	assert.Equal(t, uintptr(0x80), a.LoadValue())

	prev, ok = a.CompareExchange(0x40, 0xc0)
	require.False(t, ok)
	assert.Equal(t, uintptr(0x80), prev, "failure must report the actual current word")
	assert.Equal(t, uintptr(0x80), a.LoadValue(), "failed exchange must leave the slot untouched")
}

func TestAtomicCompareExchangeContended(t *testing.T) {
	const (
		workers    = 8
		increments = 2000
	)
	a := NewAtomic[RawPtr](0)

	pool, err := ants.NewPool(workers)
	require.NoError(t, err)
	defer pool.Release()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func() {
			defer wg.Done()
			for i := 0; i < increments; i++ {
				for {
					old := a.LoadValue()
					if _, ok := a.CompareExchange(old, old+1); ok {
						break
					}
				}
			}
		}))
	}
	wg.Wait()

	assert.Equal(t, uintptr(workers*increments), a.LoadValue())
}
