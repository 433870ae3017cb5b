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


package grantmatch

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/ai/openai"
	"github.com/poiesic/grantmatch/batch"
	"github.com/poiesic/grantmatch/generate"
	"github.com/poiesic/grantmatch/match"
	"github.com/poiesic/grantmatch/store"
	"github.com/poiesic/grantmatch/store/badger"
	"github.com/poiesic/grantmatch/vectorcache"
)

// Service bundles the stores, the embedding provider, and the vector cache
// for one data directory. Create once per process and inject everywhere.
type Service struct {
	backend    *badger.Backend
	grantRepo  store.GrantRepository
	userRepo   store.UserRepository
	cacheStore *vectorcache.Store
	provider   ai.Provider
	aiConfig   *ai.Config
	dataDir    string
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// NewService opens the catalog database under dataDir and wires the
// embedding provider. The vector cache lives next to the database.
func NewService(dataDir string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	options.aiConfig.Normalize()
	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "catalog"), false)
	if err != nil {
		return nil, err
	}

	grantRepo, err := badger.NewGrantRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	userRepo, err := badger.NewUserRepository(backend)
	if err != nil {
		grantRepo.Close()
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		userRepo.Close()
		grantRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:    backend,
		grantRepo:  grantRepo,
		userRepo:   userRepo,
		cacheStore: vectorcache.NewStore(filepath.Join(dataDir, "cache")),
		provider:   provider,
		aiConfig:   options.aiConfig,
		dataDir:    dataDir,
		logger:     slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.userRepo.Close(); err != nil {
		s.logger.Error("error closing user repository", "err", err)
		return err
	}
	if err := s.grantRepo.Close(); err != nil {
		s.logger.Error("error closing grant repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) GrantRepository() store.GrantRepository {
	return s.grantRepo
}

func (s *Service) UserRepository() store.UserRepository {
	return s.userRepo
}

func (s *Service) CacheStore() *vectorcache.Store {
	return s.cacheStore
}

// NewMatcher builds the serving-path matcher.
func (s *Service) NewMatcher() *match.Matcher {
	return match.NewMatcher(s.userRepo, s.grantRepo, s.cacheStore, s.provider.Embedder())
}

// NewGenerator builds the rate-limited cache generator. Progress is written
// to stderr; pass a generate.Config to override chunking and retries.
func (s *Service) NewGenerator(config *generate.Config) (*generate.Generator, error) {
	if config == nil {
		config = generate.DefaultConfig()
		config.Dimension = s.aiConfig.Dimension
	}
	if config.LockPath == "" {
		config.LockPath = filepath.Join(s.dataDir, "generate.lock")
	}
	return generate.NewGenerator(s.grantRepo, s.provider.Embedder(), s.cacheStore, config, os.Stderr)
}

// NewBatchTracker builds the batch job tracker. The job descriptor lives in
// the cache directory next to the artifact it will eventually replace.
func (s *Service) NewBatchTracker() *batch.Tracker {
	return batch.NewTracker(s.grantRepo, s.provider.BatchEmbedder(), &batch.Config{
		Model:          s.aiConfig.EmbeddingModel,
		Dimension:      s.aiConfig.Dimension,
		DescriptorPath: filepath.Join(s.dataDir, "cache", batch.DescriptorFileName),
	})
}
