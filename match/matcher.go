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


package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/store"
	"github.com/poiesic/grantmatch/vectorcache"
)

// DefaultLimit is the number of results returned when the caller passes
// a non-positive limit.
const DefaultLimit = 20

// Matcher orchestrates a single match request: profile lookup, cache load,
// alignment check, one user embedding, scoring, ranking, formatting.
type Matcher struct {
	users      store.UserRepository
	grants     store.GrantRepository
	cacheStore *vectorcache.Store
	embedder   ai.Embedder
	engine     *Engine
	logger     *slog.Logger
}

// NewMatcher creates a matcher.
func NewMatcher(users store.UserRepository, grants store.GrantRepository, cacheStore *vectorcache.Store, embedder ai.Embedder) *Matcher {
	return &Matcher{
		users:      users,
		grants:     grants,
		cacheStore: cacheStore,
		embedder:   embedder,
		engine:     NewEngine(),
		logger:     slog.Default().With("component", "matcher"),
	}
}

type candidate struct {
	index int
	score float32
}

// Match returns the top grants for a user, ranked by composite score.
// An unknown user yields an empty list, not an error. A catalog/cache size
// mismatch aborts with core.ErrCacheStale rather than returning misaligned
// scores.
func (m *Matcher) Match(ctx context.Context, userID string, limit int) ([]core.MatchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	user, err := m.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.logger.Warn("match requested for unknown user", "userID", userID)
			return []core.MatchResult{}, nil
		}
		return nil, err
	}

	cache, err := m.cacheStore.Load()
	if err != nil {
		return nil, err
	}

	grants, err := m.grants.ListDescribedGrants(ctx)
	if err != nil {
		return nil, err
	}

	if len(grants) != cache.Len() {
		return nil, fmt.Errorf("%w: catalog has %d grants but cache has %d vectors, regenerate the embedding cache",
			core.ErrCacheStale, len(grants), cache.Len())
	}

	// The single embedding call of the request
	userVec, err := m.embedder.EmbedText(ctx, user.ProjectSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to embed user profile: %w", err)
	}

	candidates := make([]candidate, 0, len(grants))
	for i, grant := range grants {
		score, excluded := m.engine.Score(user, grant, cache.Vectors[i], userVec)
		if excluded {
			continue
		}
		candidates = append(candidates, candidate{index: i, score: score})
	}

	// Stable sort keeps catalog order between equal scores
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]core.MatchResult, len(candidates))
	for i, c := range candidates {
		results[i] = formatResult(grants[c.index], c.score)
	}

	m.logger.Info("match complete", "userID", userID, "candidates", len(grants), "returned", len(results))
	return results, nil
}
