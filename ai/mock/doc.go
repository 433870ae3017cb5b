// Package mock provides test double implementations of the embedding
// service interfaces.
//
// The mocks allow tests to run without external embedding services and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	embedder := mock.NewEmbedder()
//	vec, err := embedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("boom")
//	}
//
//	// Scripted batch lifecycle
//	batch := mock.NewBatchService()
//	batch.States = []ai.BatchState{ai.BatchRunning, ai.BatchSucceeded}
//
// # Default Behavior
//
//   - Embedder: returns deterministic unit vectors derived from a text hash
//   - BatchService: succeeds immediately and returns deterministic vectors
//     in reverse submission order, mimicking a provider that does not
//     preserve ordering
package mock
