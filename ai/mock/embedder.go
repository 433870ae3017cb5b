package mock

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/poiesic/grantmatch/vector"
)

// DefaultDimension is the dimension of vectors produced by the default
// deterministic behavior.
const DefaultDimension = 768

// Embedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type Embedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension of generated vectors. Defaults to DefaultDimension.
	Dimension int

	callCount int
}

// NewEmbedder creates a mock embedder with default deterministic behavior.
// Note: returns the concrete type to allow test assertions.
func NewEmbedder() *Embedder {
	return &Embedder{Dimension: DefaultDimension}
}

func (m *Embedder) dim() int {
	if m.Dimension > 0 {
		return m.Dimension
	}
	return DefaultDimension
}

// EmbedText generates a deterministic unit vector based on the text hash.
// Empty text yields the zero vector, matching the production contract.
func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	if strings.TrimSpace(text) == "" {
		return vector.Zero(m.dim()), nil
	}
	return DeterministicVector(text, m.dim()), nil
}

// EmbedTexts generates deterministic unit vectors for multiple texts.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out[i] = vector.Zero(m.dim())
			continue
		}
		out[i] = DeterministicVector(text, m.dim())
	}
	return out, nil
}

// CallCount returns the number of times any method was called.
func (m *Embedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *Embedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// DeterministicVector creates a unit embedding vector from text.
// The same text always produces the same vector.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	v := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		v[i] = float32(seed%2000)/1000.0 - 1.0
	}

	return vector.Normalize(v)
}
