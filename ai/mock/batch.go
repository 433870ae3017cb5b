package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/grantmatch/ai"
)

// BatchService is a test double for ai.BatchEmbedder with a scripted
// lifecycle. By default a submitted job succeeds immediately and delivers
// deterministic vectors in reverse submission order, mimicking a provider
// that does not preserve ordering.
type BatchService struct {
	// States, when non-empty, is consumed one entry per BatchStatus call;
	// the final entry repeats once exhausted.
	States []ai.BatchState

	// SubmitFunc overrides SubmitBatch if set.
	SubmitFunc func(ctx context.Context, keys, texts []string) (string, error)

	// ResultsFunc overrides BatchResults if set.
	ResultsFunc func(ctx context.Context, jobID string) ([]ai.BatchResult, error)

	// FailKeys lists submission keys whose results are delivered without a
	// vector, simulating per-item provider failures.
	FailKeys []string

	// Dimension of generated vectors. Defaults to DefaultDimension.
	Dimension int

	mu         sync.Mutex
	pollCount  int
	submitted  map[string][]ai.BatchResult
	nextJobNum int
}

// NewBatchService creates a mock batch service.
func NewBatchService() *BatchService {
	return &BatchService{submitted: make(map[string][]ai.BatchResult)}
}

func (m *BatchService) dim() int {
	if m.Dimension > 0 {
		return m.Dimension
	}
	return DefaultDimension
}

// SubmitBatch records the submission and returns a synthetic job handle.
func (m *BatchService) SubmitBatch(ctx context.Context, keys []string, texts []string) (string, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, keys, texts)
	}
	if len(keys) != len(texts) {
		return "", fmt.Errorf("key/text count mismatch: %d keys, %d texts", len(keys), len(texts))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	failed := make(map[string]bool, len(m.FailKeys))
	for _, k := range m.FailKeys {
		failed[k] = true
	}

	// Deliver in reverse order: callers must re-order by key.
	results := make([]ai.BatchResult, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		r := ai.BatchResult{Key: keys[i]}
		if !failed[keys[i]] {
			r.Vector = DeterministicVector(texts[i], m.dim())
		}
		results = append(results, r)
	}

	m.nextJobNum++
	jobID := fmt.Sprintf("batch-mock-%d", m.nextJobNum)
	m.submitted[jobID] = results
	return jobID, nil
}

// BatchStatus walks the scripted state sequence, or reports success when no
// script is configured.
func (m *BatchService) BatchStatus(ctx context.Context, jobID string) (ai.BatchState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.submitted[jobID]; !ok && m.SubmitFunc == nil {
		return 0, fmt.Errorf("unknown job %q", jobID)
	}

	if len(m.States) == 0 {
		return ai.BatchSucceeded, nil
	}

	idx := m.pollCount
	if idx >= len(m.States) {
		idx = len(m.States) - 1
	}
	m.pollCount++
	return m.States[idx], nil
}

// BatchResults returns the recorded results for a job.
func (m *BatchService) BatchResults(ctx context.Context, jobID string) ([]ai.BatchResult, error) {
	if m.ResultsFunc != nil {
		return m.ResultsFunc(ctx, jobID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	results, ok := m.submitted[jobID]
	if !ok {
		return nil, fmt.Errorf("unknown job %q", jobID)
	}
	return results, nil
}

// PollCount returns the number of BatchStatus calls observed.
func (m *BatchService) PollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollCount
}
