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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/MetrodataTeam/nano-graphrag/ai"
	"github.com/MetrodataTeam/nano-graphrag/ai/openai"
	"github.com/MetrodataTeam/nano-graphrag/chunk"
	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/ingest"
	"github.com/MetrodataTeam/nano-graphrag/limiter"
	"github.com/MetrodataTeam/nano-graphrag/reindex"
	"github.com/MetrodataTeam/nano-graphrag/storage"
	"github.com/MetrodataTeam/nano-graphrag/storage/badger"
)

const closeTimeout = 30 * time.Second

// GraphRAG ties together chunking, storage, embedding, and completion
// behind a small ingestion and query surface.
type GraphRAG struct {
	config   *Config
	backend  *badger.Backend
	docs     storage.KVStore[*core.Document]
	chunks   storage.KVStore[*core.Chunk]
	vectors  storage.VectorStore
	pipeline *ingest.Pipeline
	provider ai.Provider
	best     ai.Completer
	cheap    ai.Completer
	pool     *ants.Pool
	logger   *slog.Logger
	closed   atomic.Bool

	// ownProvider and ownStores record whether Close should tear the
	// provider and storage down, or whether the caller injected them.
	ownProvider bool
	ownStores   bool
}

// New creates a GraphRAG instance. By default it opens badger-backed
// storage under the configured working directory and talks to an
// OpenAI-compatible provider; both can be replaced through options.
func New(opts ...Option) (*GraphRAG, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &GraphRAG{
		config: cfg,
		logger: logger.With("component", "graphrag"),
	}

	provider := cfg.Provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("creating AI provider: %w", err)
		}
		r.ownProvider = true
	}
	r.provider = provider

	embedLim, err := limiter.New(cfg.EmbeddingMaxConcurrency)
	if err != nil {
		r.teardown()
		return nil, err
	}
	bestLim, err := limiter.New(cfg.BestModelMaxConcurrency)
	if err != nil {
		r.teardown()
		return nil, err
	}
	cheapLim, err := limiter.New(cfg.CheapModelMaxConcurrency)
	if err != nil {
		r.teardown()
		return nil, err
	}

	r.best = ai.LimitCompleter(provider.BestCompleter(), bestLim)
	r.cheap = ai.LimitCompleter(provider.CheapCompleter(), cheapLim)
	embedder := ai.LimitEmbedder(provider.Embedder(), embedLim)

	if cfg.Docs != nil {
		r.docs = cfg.Docs
		r.chunks = cfg.Chunks
		r.vectors = cfg.Vectors
	} else {
		storagePath := ""
		if !cfg.InMemory {
			if err := os.MkdirAll(cfg.WorkingDir, 0o755); err != nil {
				r.teardown()
				return nil, fmt.Errorf("creating working directory: %w", err)
			}
			storagePath = filepath.Join(cfg.WorkingDir, "storage")
		}

		backend, err := badger.OpenBackend(storagePath, cfg.InMemory)
		if err != nil {
			r.teardown()
			return nil, fmt.Errorf("opening storage backend: %w", err)
		}
		r.backend = backend
		r.docs = badger.NewDocumentStore(backend)
		r.chunks = badger.NewChunkStore(backend)
		r.vectors = badger.NewVectorStore(backend, embedder,
			badger.WithEmbeddingBatchSize(cfg.EmbeddingBatchSize))
		r.ownStores = true
	}

	splitter, err := chunk.NewSplitter(cfg.TiktokenModel, cfg.ChunkTokenSize, cfg.ChunkOverlapTokens)
	if err != nil {
		r.teardown()
		return nil, fmt.Errorf("creating splitter: %w", err)
	}

	pipeline, err := ingest.NewPipeline(r.docs, r.chunks, r.vectors, splitter,
		ingest.WithLogger(logger))
	if err != nil {
		r.teardown()
		return nil, err
	}
	r.pipeline = pipeline

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		r.teardown()
		return nil, err
	}
	r.pool = pool

	return r, nil
}

// Insert ingests the given texts as new documents: each is chunked,
// embedded, and persisted. Blank texts are skipped.
func (r *GraphRAG) Insert(ctx context.Context, texts ...string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	_, err := r.pipeline.Insert(ctx, texts...)
	return err
}

// InsertAsync schedules an Insert on the worker pool and returns
// immediately. Processing errors are logged, not returned. Close waits
// for scheduled inserts to drain.
func (r *GraphRAG) InsertAsync(texts ...string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.pool.Submit(func() {
		if _, err := r.pipeline.Insert(context.Background(), texts...); err != nil {
			r.logger.Error("error processing async insert", "err", err)
		}
	})
}

// Query sends the question to the best completion model and returns its
// answer.
func (r *GraphRAG) Query(ctx context.Context, question string) (string, error) {
	if r.closed.Load() {
		return "", ErrClosed
	}
	return r.best.Complete(ctx, question)
}

// QueryCheap sends the question to the cheaper completion model.
func (r *GraphRAG) QueryCheap(ctx context.Context, question string) (string, error) {
	if r.closed.Load() {
		return "", ErrClosed
	}
	return r.cheap.Complete(ctx, question)
}

// Search returns the topK stored chunks most similar to the query text.
func (r *GraphRAG) Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	return r.vectors.Query(ctx, query, topK)
}

// NewReindexer creates a reindexer over this instance's chunk and vector
// stores, for rebuilding the index after an embedding model change.
func (r *GraphRAG) NewReindexer(opts ...reindex.Option) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(r.chunks, r.vectors, opts...)
}

// Close drains the async insert pool and releases the AI provider and
// storage, unless the caller injected them.
func (r *GraphRAG) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	if r.pool != nil {
		if err := r.pool.ReleaseTimeout(closeTimeout); err != nil {
			r.logger.Error("error draining insert pool", "err", err)
		}
	}
	return r.teardown()
}

// teardown closes whatever New has opened so far. Safe to call on a
// partially constructed instance.
func (r *GraphRAG) teardown() error {
	if r.ownProvider && r.provider != nil {
		if err := r.provider.Close(); err != nil {
			r.logger.Error("error closing AI provider", "err", err)
		}
	}
	if r.ownStores && r.backend != nil {
		if err := r.backend.Close(); err != nil {
			r.logger.Error("error closing storage backend", "err", err)
			return err
		}
	}
	return nil
}
