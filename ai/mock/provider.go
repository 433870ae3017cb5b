package mock

import (
	"github.com/poiesic/grantmatch/ai"
)

// Provider is a test double for ai.Provider aggregating the mock embedder
// and mock batch service.
type Provider struct {
	embedder *Embedder
	batch    *BatchService
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a mock provider with default mock services.
func NewProvider() *Provider {
	return &Provider{
		embedder: NewEmbedder(),
		batch:    NewBatchService(),
	}
}

// Embedder returns the embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// BatchEmbedder returns the batch embedding service.
func (p *Provider) BatchEmbedder() ai.BatchEmbedder {
	return p.batch
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock embedder for test assertions.
func (p *Provider) GetMockEmbedder() *Embedder {
	return p.embedder
}

// GetMockBatchService returns the concrete mock batch service for test
// assertions.
func (p *Provider) GetMockBatchService() *BatchService {
	return p.batch
}
