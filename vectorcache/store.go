package vectorcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/grantmatch/core"
)

const (
	artifactFileName = "grant_vectors.bin"
	sidecarFileName  = "grant_vectors.json"
)

// sidecar is the JSON metadata written next to the vector artifact.
type sidecar struct {
	Count       int       `json:"count"`
	Dimension   int       `json:"dimension"`
	GeneratedAt time.Time `json:"generated_at"`
	Grants      []string  `json:"grants"`
}

// Store reads and writes the embedding cache in a directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on Save,
// not here, so a read-only caller can point at a missing path and get
// core.ErrCacheMissing from Load.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ArtifactPath returns the path of the binary vector artifact.
func (s *Store) ArtifactPath() string {
	return filepath.Join(s.dir, artifactFileName)
}

// SidecarPath returns the path of the JSON metadata sidecar.
func (s *Store) SidecarPath() string {
	return filepath.Join(s.dir, sidecarFileName)
}

// Load reads the cache from disk. Returns core.ErrCacheMissing when the
// artifact does not exist, and a plain error when the pair is inconsistent.
func (s *Store) Load() (*Cache, error) {
	artifactData, err := os.ReadFile(s.ArtifactPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: run the generate command or the batch pipeline to build it", core.ErrCacheMissing)
		}
		return nil, err
	}

	sidecarData, err := os.ReadFile(s.SidecarPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: metadata sidecar %s is missing", core.ErrCacheMissing, sidecarFileName)
		}
		return nil, err
	}

	dim, vectors, err := unmarshalVectors(artifactData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode vector artifact: %w", err)
	}

	var meta sidecar
	if err := json.Unmarshal(sidecarData, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata sidecar: %w", err)
	}

	if len(vectors) != len(meta.Grants) {
		return nil, fmt.Errorf("cache is inconsistent: %d vectors but %d grant names", len(vectors), len(meta.Grants))
	}
	if meta.Count != len(vectors) {
		return nil, fmt.Errorf("cache is inconsistent: sidecar count %d but %d vectors", meta.Count, len(vectors))
	}
	if meta.Dimension != dim {
		return nil, fmt.Errorf("cache is inconsistent: sidecar dimension %d but artifact dimension %d", meta.Dimension, dim)
	}

	return &Cache{
		Dim:     dim,
		Vectors: vectors,
		Names:   meta.Grants,
	}, nil
}

// Save writes the cache to disk atomically: both files are written to temp
// names in the target directory and renamed into place.
func (s *Store) Save(cache *Cache) error {
	if len(cache.Vectors) != len(cache.Names) {
		return fmt.Errorf("refusing to save inconsistent cache: %d vectors but %d names", len(cache.Vectors), len(cache.Names))
	}
	for i, vec := range cache.Vectors {
		if len(vec) != cache.Dim {
			return fmt.Errorf("refusing to save inconsistent cache: vector %d has dimension %d, want %d", i, len(vec), cache.Dim)
		}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	meta := sidecar{
		Count:       len(cache.Vectors),
		Dimension:   cache.Dim,
		GeneratedAt: time.Now().UTC(),
		Grants:      cache.Names,
	}
	sidecarData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	artifactTmp := s.ArtifactPath() + ".tmp"
	sidecarTmp := s.SidecarPath() + ".tmp"

	if err := os.WriteFile(artifactTmp, marshalVectors(cache.Dim, cache.Vectors), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(sidecarTmp, sidecarData, 0644); err != nil {
		os.Remove(artifactTmp)
		return err
	}

	if err := os.Rename(artifactTmp, s.ArtifactPath()); err != nil {
		os.Remove(artifactTmp)
		os.Remove(sidecarTmp)
		return err
	}
	return os.Rename(sidecarTmp, s.SidecarPath())
}
