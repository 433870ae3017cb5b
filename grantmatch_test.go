package grantmatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_data")
		service, err := NewService(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, service)
		defer service.Close()

		// Verify components are initialized
		assert.NotNil(t, service.GrantRepository())
		assert.NotNil(t, service.UserRepository())
		assert.NotNil(t, service.CacheStore())
		assert.NotNil(t, service.backend)
		assert.NotNil(t, service.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the catalog directory should be
		tmpDir := t.TempDir()
		catalogPath := filepath.Join(tmpDir, "catalog")
		require.NoError(t, os.WriteFile(catalogPath, []byte("test"), 0644))

		service, err := NewService(tmpDir)
		assert.Error(t, err)
		assert.Nil(t, service)
	})
}

func TestService_Close(t *testing.T) {
	service, err := NewService(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, service)

	err = service.Close()
	assert.NoError(t, err)
}

func TestService_FactoryMethods(t *testing.T) {
	service, err := NewService(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, service)
	defer service.Close()

	t.Run("can create matcher", func(t *testing.T) {
		matcher := service.NewMatcher()
		require.NotNil(t, matcher)
	})

	t.Run("can create generator", func(t *testing.T) {
		generator, err := service.NewGenerator(nil)
		require.NoError(t, err)
		require.NotNil(t, generator)
		generator.Release()
	})

	t.Run("can create batch tracker", func(t *testing.T) {
		tracker := service.NewBatchTracker()
		require.NotNil(t, tracker)
	})
}
