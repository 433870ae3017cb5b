package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, DefaultDimension, cfg.Dimension)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("https://api.openai.com"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithAPIKey("sk-test"),
		WithDimension(1536),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 1536, cfg.Dimension)
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:8080"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.EmbeddingHost)
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:8080/"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves v1 suffix alone", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:8080/v1"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.EmbeddingHost)
	})

	t.Run("fills empty api key", func(t *testing.T) {
		cfg := &Config{}
		cfg.Normalize()
		assert.Equal(t, "none", cfg.APIKey)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		cfg := &Config{EmbeddingModel: "m", Dimension: 768}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://h/v1", Dimension: 768}
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive dimension", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://h/v1", EmbeddingModel: "m"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})
}
