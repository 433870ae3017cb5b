package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/vector"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
type Embedder struct {
	embedder  embeddings.Embedder
	dimension int
	logger    *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder:  embedder,
		dimension: config.Dimension,
		logger:    slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a unit-norm embedding for a single text string.
// Empty or whitespace-only text yields the zero vector without an API call.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return vector.Zero(e.dimension), nil
	}

	e.logger.Debug("generating embedding for single text", "length", len(text))

	results, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	if len(results) == 0 {
		e.logger.Warn("embedder returned empty result")
		return vector.Zero(e.dimension), nil
	}

	return vector.Normalize(results[0]), nil
}

// EmbedTexts generates unit-norm embeddings for multiple texts, preserving
// input order. Empty texts map to zero vectors in place; they are not sent
// to the provider.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	// Collect the texts that actually need an API call, remembering where
	// each result belongs.
	indices := make([]int, 0, len(texts))
	payload := make([]string, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) != "" {
			indices = append(indices, i)
			payload = append(payload, text)
		}
	}

	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = vector.Zero(e.dimension)
	}
	if len(payload) == 0 {
		return out, nil
	}

	results, err := e.embedder.EmbedDocuments(ctx, payload)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(payload), "err", err)
		return nil, err
	}

	for j, idx := range indices {
		if j < len(results) {
			out[idx] = vector.Normalize(results[j])
		}
	}
	return out, nil
}
