// Copyright 2025 MetrodataTeam
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


package graphrag

import (
	"log/slog"
	"time"

	"github.com/MetrodataTeam/nano-graphrag/ai"
	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/storage"
)

const (
	// DefaultChunkTokenSize is the default maximum tokens per chunk.
	DefaultChunkTokenSize = 1200

	// DefaultChunkOverlapTokens is the default token overlap between
	// consecutive chunks of a document.
	DefaultChunkOverlapTokens = 100

	// DefaultTiktokenModel selects the tokenizer used for chunking.
	DefaultTiktokenModel = "gpt-4o"

	// DefaultEmbeddingBatchSize is how many chunks are embedded per
	// provider call.
	DefaultEmbeddingBatchSize = 16

	// DefaultMaxConcurrency bounds concurrent calls to each AI model.
	DefaultMaxConcurrency = 8
)

// DefaultWorkingDir returns a timestamped cache directory under the
// current directory, so repeated runs don't collide.
func DefaultWorkingDir() string {
	return "./nano-graphrag-cache-" + time.Now().Format("2006-01-02-15-04-05")
}

// Config holds all settings for a GraphRAG instance.
type Config struct {
	// WorkingDir is where storage files live. Created on construction
	// if it doesn't exist. Ignored when InMemory is set.
	WorkingDir string

	// InMemory keeps all storage in memory. Intended for tests.
	InMemory bool

	ChunkTokenSize     int
	ChunkOverlapTokens int
	TiktokenModel      string

	EmbeddingBatchSize int

	EmbeddingMaxConcurrency  int64
	BestModelMaxConcurrency  int64
	CheapModelMaxConcurrency int64

	// AI configures the OpenAI-compatible provider built by New.
	// Ignored when Provider is set.
	AI *ai.Config

	// Provider overrides the AI provider entirely. The caller keeps
	// ownership: Close does not close an injected provider.
	Provider ai.Provider

	// Docs, Chunks, and Vectors override the badger-backed stores.
	// All three must be set together; the caller keeps ownership.
	Docs    storage.KVStore[*core.Document]
	Chunks  storage.KVStore[*core.Chunk]
	Vectors storage.VectorStore

	Logger *slog.Logger
}

// Option configures a GraphRAG instance.
type Option func(*Config)

// WithWorkingDir sets the storage directory.
func WithWorkingDir(dir string) Option {
	return func(c *Config) {
		c.WorkingDir = dir
	}
}

// WithInMemory keeps all storage in memory instead of on disk.
func WithInMemory() Option {
	return func(c *Config) {
		c.InMemory = true
	}
}

// WithChunking sets the chunk size and overlap in tokens.
func WithChunking(tokenSize, overlapTokens int) Option {
	return func(c *Config) {
		c.ChunkTokenSize = tokenSize
		c.ChunkOverlapTokens = overlapTokens
	}
}

// WithTiktokenModel sets the model whose tokenizer is used for chunking.
func WithTiktokenModel(model string) Option {
	return func(c *Config) {
		c.TiktokenModel = model
	}
}

// WithEmbeddingBatchSize sets how many chunks are embedded per call.
func WithEmbeddingBatchSize(size int) Option {
	return func(c *Config) {
		c.EmbeddingBatchSize = size
	}
}

// WithMaxConcurrency bounds concurrent calls per model role.
func WithMaxConcurrency(embedding, best, cheap int64) Option {
	return func(c *Config) {
		c.EmbeddingMaxConcurrency = embedding
		c.BestModelMaxConcurrency = best
		c.CheapModelMaxConcurrency = cheap
	}
}

// WithAIConfig sets the configuration for the built-in OpenAI-compatible
// provider.
func WithAIConfig(cfg *ai.Config) Option {
	return func(c *Config) {
		c.AI = cfg
	}
}

// WithProvider injects a custom AI provider. The caller remains
// responsible for closing it.
func WithProvider(p ai.Provider) Option {
	return func(c *Config) {
		c.Provider = p
	}
}

// WithStores injects custom storage implementations in place of the
// badger-backed defaults. The caller remains responsible for closing them.
func WithStores(docs storage.KVStore[*core.Document], chunks storage.KVStore[*core.Chunk], vectors storage.VectorStore) Option {
	return func(c *Config) {
		c.Docs = docs
		c.Chunks = chunks
		c.Vectors = vectors
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns a Config with the default chunking, batching,
// and concurrency settings.
func DefaultConfig() *Config {
	return &Config{
		WorkingDir:               DefaultWorkingDir(),
		ChunkTokenSize:           DefaultChunkTokenSize,
		ChunkOverlapTokens:       DefaultChunkOverlapTokens,
		TiktokenModel:            DefaultTiktokenModel,
		EmbeddingBatchSize:       DefaultEmbeddingBatchSize,
		EmbeddingMaxConcurrency:  DefaultMaxConcurrency,
		BestModelMaxConcurrency:  DefaultMaxConcurrency,
		CheapModelMaxConcurrency: DefaultMaxConcurrency,
		AI:                       ai.DefaultConfig(),
		Logger:                   slog.Default(),
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if !c.InMemory && c.WorkingDir == "" {
		return ErrWorkingDirRequired
	}
	if c.ChunkTokenSize <= 0 {
		return ErrInvalidChunkTokenSize
	}
	if c.ChunkOverlapTokens < 0 || c.ChunkOverlapTokens >= c.ChunkTokenSize {
		return ErrInvalidChunkOverlap
	}
	if c.EmbeddingBatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.EmbeddingMaxConcurrency <= 0 || c.BestModelMaxConcurrency <= 0 || c.CheapModelMaxConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	customStores := 0
	for _, set := range []bool{c.Docs != nil, c.Chunks != nil, c.Vectors != nil} {
		if set {
			customStores++
		}
	}
	if customStores != 0 && customStores != 3 {
		return ErrPartialStores
	}
	return nil
}
