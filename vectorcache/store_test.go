package vectorcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	cache := &Cache{
		Dim: 4,
		Vectors: [][]float32{
			vector.Normalize([]float32{1, 2, 3, 4}),
			vector.Zero(4),
			vector.Normalize([]float32{-1, 0, 0, 1}),
		},
		Names: []string{"Alpha Fund", "Beta Fund", "Gamma Fund"},
	}

	require.NoError(t, store.Save(cache))

	got, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, got.Dim)
	assert.Equal(t, cache.Names, got.Names)
	require.Equal(t, 3, got.Len())
	for i := range cache.Vectors {
		assert.InDeltaSlice(t, cache.Vectors[i], got.Vectors[i], 1e-6)
	}
	assert.True(t, vector.IsZero(got.Vectors[1]))
}

func TestLoadMissingArtifact(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nonexistent"))

	_, err := store.Load()
	require.ErrorIs(t, err, core.ErrCacheMissing)
	assert.Contains(t, err.Error(), "generate")
}

func TestLoadMissingSidecar(t *testing.T) {
	store := NewStore(t.TempDir())

	cache := &Cache{
		Dim:     2,
		Vectors: [][]float32{{0.6, 0.8}},
		Names:   []string{"Solo Fund"},
	}
	require.NoError(t, store.Save(cache))
	require.NoError(t, os.Remove(store.SidecarPath()))

	_, err := store.Load()
	require.ErrorIs(t, err, core.ErrCacheMissing)
}

func TestLoadInconsistentSidecar(t *testing.T) {
	store := NewStore(t.TempDir())

	cache := &Cache{
		Dim:     2,
		Vectors: [][]float32{{0.6, 0.8}, {0, 1}},
		Names:   []string{"One", "Two"},
	}
	require.NoError(t, store.Save(cache))

	// Corrupt the sidecar so it names one grant too many
	require.NoError(t, os.WriteFile(store.SidecarPath(),
		[]byte(`{"count":3,"dimension":2,"grants":["One","Two","Three"]}`), 0644))

	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent")
}

func TestSaveRejectsMismatchedNames(t *testing.T) {
	store := NewStore(t.TempDir())

	cache := &Cache{
		Dim:     2,
		Vectors: [][]float32{{0, 1}},
		Names:   []string{"One", "Extra"},
	}
	assert.Error(t, store.Save(cache))
}

func TestSaveRejectsWrongDimension(t *testing.T) {
	store := NewStore(t.TempDir())

	cache := &Cache{
		Dim:     3,
		Vectors: [][]float32{{0, 1}},
		Names:   []string{"One"},
	}
	assert.Error(t, store.Save(cache))
}

func TestSaveOverwritesExisting(t *testing.T) {
	store := NewStore(t.TempDir())

	first := &Cache{Dim: 2, Vectors: [][]float32{{0, 1}}, Names: []string{"Old"}}
	require.NoError(t, store.Save(first))

	second := &Cache{Dim: 2, Vectors: [][]float32{{1, 0}, {0, 1}}, Names: []string{"New A", "New B"}}
	require.NoError(t, store.Save(second))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"New A", "New B"}, got.Names)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(store.ArtifactPath()))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEmptyCacheRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save(&Cache{Dim: 768}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, 768, got.Dim)
}
