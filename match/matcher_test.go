package match

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/grantmatch/ai/mock"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/store"
	badgerstore "github.com/poiesic/grantmatch/store/badger"
	"github.com/poiesic/grantmatch/vectorcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 2

type matcherFixture struct {
	matcher    *Matcher
	grants     store.GrantRepository
	users      store.UserRepository
	cacheStore *vectorcache.Store
	embedder   *mock.Embedder
}

func setupMatcher(t *testing.T) *matcherFixture {
	t.Helper()

	grantRepo, userRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		userRepo.Close()
		grantRepo.Close()
		backend.Close()
	})

	cacheStore := vectorcache.NewStore(t.TempDir())
	embedder := mock.NewEmbedder()
	embedder.Dimension = testDim

	return &matcherFixture{
		matcher:    NewMatcher(userRepo, grantRepo, cacheStore, embedder),
		grants:     grantRepo,
		users:      userRepo,
		cacheStore: cacheStore,
		embedder:   embedder,
	}
}

// seedCatalog inserts grants with descending ScrapedAt so catalog order
// matches argument order, then saves the given vectors as the cache.
func (f *matcherFixture) seedCatalog(t *testing.T, grants []*core.GrantRecord, vectors [][]float32) {
	t.Helper()

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i, grant := range grants {
		grant.ScrapedAt = base.Add(-time.Duration(i) * time.Hour)
	}
	_, err := f.grants.AddGrants(context.Background(), grants...)
	require.NoError(t, err)

	names := make([]string, len(grants))
	for i, grant := range grants {
		names[i] = grant.ProgramName
	}
	require.NoError(t, f.cacheStore.Save(&vectorcache.Cache{
		Dim:     testDim,
		Vectors: vectors,
		Names:   names,
	}))
}

func TestMatchRanksByScore(t *testing.T) {
	f := setupMatcher(t)

	f.seedCatalog(t,
		[]*core.GrantRecord{
			{ProgramName: "Sideways", Description: "unrelated work"},
			{ProgramName: "Perfect", Description: "exactly the project"},
			{ProgramName: "Opposite", Description: "the inverse"},
		},
		[][]float32{
			{0, 1},  // cosine 0, score 0.5
			{1, 0},  // cosine 1, score 1.0
			{-1, 0}, // cosine -1, score 0, dropped by the floor
		},
	)

	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	require.NoError(t, f.users.PutUser(context.Background(), &core.UserProfile{
		UserID:         "u1",
		ProjectSummary: "my project",
	}))

	results, err := f.matcher.Match(context.Background(), "u1", 0)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Perfect", results[0].ProgramName)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Equal(t, "Sideways", results[1].ProgramName)
	assert.InDelta(t, 0.5, results[1].Score, 1e-6)
	assert.Equal(t, 1, f.embedder.CallCount())
}

func TestMatchTiesKeepCatalogOrder(t *testing.T) {
	f := setupMatcher(t)

	f.seedCatalog(t,
		[]*core.GrantRecord{
			{ProgramName: "First In Catalog", Description: "a"},
			{ProgramName: "Second In Catalog", Description: "b"},
		},
		[][]float32{
			{0, 1},
			{0, 1},
		},
	)

	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	require.NoError(t, f.users.PutUser(context.Background(), &core.UserProfile{
		UserID:         "u1",
		ProjectSummary: "tie",
	}))

	results, err := f.matcher.Match(context.Background(), "u1", 0)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "First In Catalog", results[0].ProgramName)
	assert.Equal(t, "Second In Catalog", results[1].ProgramName)
}

func TestMatchHonorsLimit(t *testing.T) {
	f := setupMatcher(t)

	f.seedCatalog(t,
		[]*core.GrantRecord{
			{ProgramName: "A", Description: "a"},
			{ProgramName: "B", Description: "b"},
			{ProgramName: "C", Description: "c"},
		},
		[][]float32{{1, 0}, {1, 0}, {1, 0}},
	)

	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	require.NoError(t, f.users.PutUser(context.Background(), &core.UserProfile{
		UserID:         "u1",
		ProjectSummary: "anything",
	}))

	results, err := f.matcher.Match(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMatchUnknownUserReturnsEmpty(t *testing.T) {
	f := setupMatcher(t)

	results, err := f.matcher.Match(context.Background(), "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, f.embedder.CallCount())
}

func TestMatchMissingCache(t *testing.T) {
	f := setupMatcher(t)

	require.NoError(t, f.users.PutUser(context.Background(), &core.UserProfile{
		UserID:         "u1",
		ProjectSummary: "anything",
	}))

	_, err := f.matcher.Match(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, core.ErrCacheMissing)
}

func TestMatchStaleCache(t *testing.T) {
	f := setupMatcher(t)

	f.seedCatalog(t,
		[]*core.GrantRecord{{ProgramName: "Only", Description: "one"}},
		[][]float32{{1, 0}},
	)

	// The catalog grows after the cache was generated
	_, err := f.grants.AddGrants(context.Background(), &core.GrantRecord{
		ProgramName: "Newer",
		Description: "arrived after generation",
		ScrapedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, f.users.PutUser(context.Background(), &core.UserProfile{
		UserID:         "u1",
		ProjectSummary: "anything",
	}))

	results, err := f.matcher.Match(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, core.ErrCacheStale)
	assert.Empty(t, results)
}

func TestMatchFormatsResults(t *testing.T) {
	f := setupMatcher(t)

	longDescription := strings.Repeat("community projects ", 20) // > 200 chars

	f.seedCatalog(t,
		[]*core.GrantRecord{{
			ProgramName: "Formatted",
			Source:      "otf",
			URL:         "https://example.org/f",
			Description: longDescription,
			FundingLow:  "$5,000",
			FundingHigh: "$75,000",
		}},
		[][]float32{{1, 0}},
	)

	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	require.NoError(t, f.users.PutUser(context.Background(), &core.UserProfile{
		UserID:         "u1",
		ProjectSummary: "anything",
	}))

	results, err := f.matcher.Match(context.Background(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "Formatted", got.ProgramName)
	assert.Equal(t, "otf", got.Source)
	assert.Equal(t, "https://example.org/f", got.URL)
	assert.Len(t, got.Description, descriptionLimit+3)
	assert.True(t, strings.HasSuffix(got.Description, "..."))
	assert.Equal(t, "$5,000 - $75,000", got.FundingDisplay)
	assert.Equal(t, notSpecified, got.Deadline)
}

func TestFormatFundingRangeVariants(t *testing.T) {
	tests := []struct {
		name string
		low  string
		high string
		want string
	}{
		{"both bounds", "$5,000", "$75,000", "$5,000 - $75,000"},
		{"low only", "1000", "", "from $1,000"},
		{"high only", "", "$20,000", "up to $20,000"},
		{"neither", "", "", notSpecified},
		{"unparseable kept verbatim", "varies", "$500", "varies - $500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFundingRange(tt.low, tt.high))
		})
	}
}
