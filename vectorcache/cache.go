package vectorcache

import (
	"fmt"

	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Cache holds the grant embedding vectors with their parallel metadata.
// Vectors[i] is the embedding of the grant named Names[i]; the two slices
// always have the same length. Every vector has exactly Dim components and
// is either unit-norm or exactly zero.
type Cache struct {
	Dim     int
	Vectors [][]float32
	Names   []string
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.Vectors)
}

// marshalVectors encodes the vector artifact: count, dimension, then the
// vector components in row order. Names live in the JSON sidecar, not here.
func marshalVectors(dim int, vectors [][]float32) []byte {
	size := varint.Int.Size(len(vectors)) + varint.Int.Size(dim)
	size += len(vectors) * dim * raw.Float32.Size(0)

	buf := make([]byte, size)
	n := varint.Int.Marshal(len(vectors), buf)
	n += varint.Int.Marshal(dim, buf[n:])
	for _, vec := range vectors {
		for _, component := range vec {
			n += raw.Float32.Marshal(component, buf[n:])
		}
	}
	return buf
}

// unmarshalVectors decodes the vector artifact.
func unmarshalVectors(data []byte) (dim int, vectors [][]float32, err error) {
	count, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return 0, nil, err
	}
	var n1 int
	dim, n1, err = varint.Int.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return 0, nil, err
	}
	if count < 0 || dim < 0 {
		return 0, nil, fmt.Errorf("invalid artifact header: count=%d dim=%d", count, dim)
	}

	vectors = make([][]float32, count)
	for i := range vectors {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j], n1, err = raw.Float32.Unmarshal(data[n:])
			n += n1
			if err != nil {
				return 0, nil, err
			}
		}
		vectors[i] = vec
	}
	return dim, vectors, nil
}
