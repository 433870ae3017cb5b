// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package generate

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/store"
	"github.com/poiesic/grantmatch/vector"
	"github.com/poiesic/grantmatch/vectorcache"
)

// Config holds configuration for cache generation.
type Config struct {
	// ChunkSize is the number of grants embedded between pauses
	ChunkSize int

	// ChunkDelay is the minimum interval between chunk starts
	ChunkDelay time.Duration

	// PoolSize is the number of concurrent embedding calls within a chunk
	PoolSize int

	// MaxRetries is the maximum number of attempts per grant
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Dimension is the embedding dimension of the target cache
	Dimension int

	// LockPath is the run lock file; empty disables locking
	LockPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Config{
		ChunkSize:  10,
		ChunkDelay: 2 * time.Second,
		PoolSize:   poolSize,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
		Dimension:  ai.DefaultDimension,
	}
}

// Generator embeds the described catalog chunk by chunk and saves the
// resulting vector cache.
type Generator struct {
	grants      store.GrantRepository
	embedder    ai.Embedder
	cacheStore  *vectorcache.Store
	config      *Config
	progress    io.Writer
	pool        *ants.Pool
	logger      *slog.Logger
	failedItems atomic.Int64
}

// NewGenerator creates a generator.
// progress: where to write progress output (typically os.Stderr)
func NewGenerator(grants store.GrantRepository, embedder ai.Embedder, cacheStore *vectorcache.Store, config *Config, progress io.Writer) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	pool, err := ants.NewPool(config.PoolSize)
	if err != nil {
		return nil, err
	}

	return &Generator{
		grants:     grants,
		embedder:   embedder,
		cacheStore: cacheStore,
		config:     config,
		progress:   progress,
		pool:       pool,
		logger:     slog.Default().With("component", "cache-generator"),
	}, nil
}

// Release frees the worker pool.
func (g *Generator) Release() {
	g.pool.Release()
}

// FailedItems returns the number of grants that fell back to a zero vector
// during the last run.
func (g *Generator) FailedItems() int64 {
	return g.failedItems.Load()
}

// Run embeds every described grant and saves the cache. A grant whose
// embedding fails after retries gets the zero vector; the run itself only
// fails on catalog, lock, or save errors, or on context cancellation.
func (g *Generator) Run(ctx context.Context) (*vectorcache.Cache, error) {
	if g.config.LockPath != "" {
		runLock := flock.New(g.config.LockPath)
		locked, err := runLock.TryLock()
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrGenerationInProgress
		}
		defer runLock.Unlock()
	}

	grants, err := g.grants.ListDescribedGrants(ctx)
	if err != nil {
		return nil, err
	}

	g.failedItems.Store(0)

	tracker := NewProgressTracker(g.progress, len(grants), g.config.ChunkSize)
	tracker.Start()

	limiter := rate.NewLimiter(rate.Every(g.config.ChunkDelay), 1)

	vectors := make([][]float32, len(grants))
	names := make([]string, len(grants))
	for i, grant := range grants {
		names[i] = grant.ProgramName
	}

	for start := 0; start < len(grants); start += g.config.ChunkSize {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		end := start + g.config.ChunkSize
		if end > len(grants) {
			end = len(grants)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			index := i
			grant := grants[i]
			wg.Add(1)
			task := func() {
				defer wg.Done()
				vectors[index] = g.embedGrant(ctx, grant)
			}
			if err := g.pool.Submit(task); err != nil {
				// Pool rejected the task; run it on this goroutine
				task()
			}
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tracker.Increment(end - start)
	}

	tracker.Finish()

	cache := &vectorcache.Cache{
		Dim:     g.config.Dimension,
		Vectors: vectors,
		Names:   names,
	}
	if err := g.cacheStore.Save(cache); err != nil {
		return nil, err
	}

	g.logger.Info("embedding cache generated",
		"grants", len(grants),
		"failed", g.failedItems.Load(),
		"elapsed", tracker.Elapsed().Round(time.Millisecond))
	return cache, nil
}

// embedGrant embeds one grant with retries, falling back to the zero vector.
func (g *Generator) embedGrant(ctx context.Context, grant *core.GrantRecord) []float32 {
	var vec []float32
	err := RetryWithBackoff(ctx, func() error {
		result, embedErr := g.embedder.EmbedText(ctx, grant.EmbedText())
		if embedErr != nil {
			return embedErr
		}
		vec = result
		return nil
	}, g.config.MaxRetries, g.config.RetryDelay)

	if err != nil {
		g.failedItems.Add(1)
		g.logger.Warn("embedding failed, using zero vector", "grant", grant.ProgramName, "error", err)
		return vector.Zero(g.config.Dimension)
	}
	if len(vec) != g.config.Dimension {
		g.failedItems.Add(1)
		g.logger.Warn("embedding has wrong dimension, using zero vector",
			"grant", grant.ProgramName, "got", len(vec), "want", g.config.Dimension)
		return vector.Zero(g.config.Dimension)
	}
	return vec
}
