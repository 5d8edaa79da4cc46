//go:build linux

package shm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRegionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapped")

	first, err := MapRegion(MapOptions{Path: path, Size: 4096, Create: true})
	require.NoError(t, err)
	require.Len(t, first.Data, 4096)
	first.Data[128] = 0x7f

	// A second mapping of the same file sees writes made through the
	// first, which is the whole point of MAP_SHARED.
	second, err := MapRegion(MapOptions{Path: path, Size: 4096})
	require.NoError(t, err)
	assert.Equal(t, byte(0x7f), second.Data[128])

	second.Data[129] = 0x11
	assert.Equal(t, byte(0x11), first.Data[129])

	require.NoError(t, UnmapRegion(second))
	require.NoError(t, UnmapRegion(first))
	require.NoError(t, RemoveRegion(first))
	assert.False(t, PathExists(path))
}

func TestMapRegionMissingFile(t *testing.T) {
	_, err := MapRegion(MapOptions{Path: filepath.Join(t.TempDir(), "absent"), Size: 4096})
	assert.Error(t, err)
}

func TestUnmapNil(t *testing.T) {
	assert.NoError(t, UnmapRegion(nil))
	assert.NoError(t, RemoveRegion(nil))
}
