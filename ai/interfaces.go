package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// matching. Implementations must be thread-safe for concurrent use.
//
// All returned vectors are L2-normalized to unit length. Empty or
// whitespace-only input yields the zero vector and a nil error; downstream
// scoring treats a zero vector as "no signal", not as a degenerate match.
type Embedder interface {
	// EmbedText generates a unit-norm vector embedding for a single text
	// string. Used once per match request for the user's profile text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in one call.
	// The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// BatchState is the provider-side state of an asynchronous embedding job.
type BatchState int

const (
	// BatchPending means the job is accepted but not yet running.
	BatchPending BatchState = iota + 1
	// BatchRunning means the job is validating or in progress.
	BatchRunning
	// BatchSucceeded means results are ready for retrieval.
	BatchSucceeded
	// BatchFailed means the provider reports the whole job failed.
	BatchFailed
	// BatchCancelled means the provider cancelled the job.
	BatchCancelled
	// BatchExpired means the job exceeded the provider's completion window.
	BatchExpired
)

// BatchResult is one item of a completed batch job. Key is the request
// identifier supplied at submission; the provider does not guarantee result
// order matches submission order, so callers re-sort by Key.
type BatchResult struct {
	Key    string
	Vector []float32
}

// BatchEmbedder submits bulk embedding work as an asynchronous provider-side
// job that is polled to completion. Implementations must be thread-safe.
type BatchEmbedder interface {
	// SubmitBatch submits keys[i]/texts[i] pairs as one job and returns the
	// provider's job handle. len(keys) must equal len(texts).
	SubmitBatch(ctx context.Context, keys []string, texts []string) (string, error)

	// BatchStatus reports the current state of a job. It is idempotent and
	// has no side effects beyond the status observation.
	BatchStatus(ctx context.Context, jobID string) (BatchState, error)

	// BatchResults retrieves the raw results of a job in whatever order the
	// provider delivered them. Vectors are returned as produced by the
	// provider, without normalization.
	BatchResults(ctx context.Context, jobID string) ([]BatchResult, error)
}

// Provider aggregates the embedding services for convenient initialization
// and lifecycle management.
type Provider interface {
	// Embedder returns the synchronous embedding service.
	Embedder() Embedder

	// BatchEmbedder returns the asynchronous bulk embedding service.
	BatchEmbedder() BatchEmbedder

	// Close releases resources held by the provider and its services.
	Close() error
}
