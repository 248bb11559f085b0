package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/MetrodataTeam/nano-graphrag/chunk"
	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/storage"
)

// Pipeline orchestrates document ingestion: chunking, embedding, and
// persistence to the vector and key-value stores.
//
// One Insert call is a single logical batch. There is no cross-store
// transaction and no locking over the underlying stores, so running two
// batches concurrently against the same working directory is unsupported.
type Pipeline struct {
	docs     storage.KVStore[*core.Document]
	chunks   storage.KVStore[*core.Chunk]
	vectors  storage.VectorStore
	splitter *chunk.Splitter
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	docs storage.KVStore[*core.Document],
	chunks storage.KVStore[*core.Chunk],
	vectors storage.VectorStore,
	splitter *chunk.Splitter,
	opts ...Option,
) (*Pipeline, error) {
	if docs == nil {
		return nil, ErrDocumentStoreRequired
	}
	if chunks == nil {
		return nil, ErrChunkStoreRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if splitter == nil {
		return nil, ErrSplitterRequired
	}

	p := &Pipeline{
		docs:     docs,
		chunks:   chunks,
		vectors:  vectors,
		splitter: splitter,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Summary reports what one Insert batch processed.
type Summary struct {
	Documents int
	Chunks    int
}

// Insert ingests the given texts as new documents. Each text is trimmed,
// assigned a fresh document id, and split into chunks tagged with the
// document's id. All chunks across the batch are then embedded and
// indexed in the vector store, followed by the document and chunk upserts
// into the key-value namespaces.
//
// Texts that are empty after trimming are skipped. A failure part-way
// through may leave the stores partially updated; the error is returned
// unchanged and no rollback is attempted.
func (p *Pipeline) Insert(ctx context.Context, texts ...string) (*Summary, error) {
	now := time.Now().UTC()

	newDocs := make(map[core.ID]*core.Document)
	insertingChunks := make(map[core.ID]*core.Chunk)
	for _, text := range texts {
		content := strings.TrimSpace(text)
		if content == "" {
			continue
		}

		doc := &core.Document{
			Id:         core.NewDocumentID(),
			Content:    content,
			InsertedAt: now,
		}
		newDocs[doc.Id] = doc

		for _, piece := range p.splitter.Split(content) {
			c := &core.Chunk{
				Id:         core.NewChunkID(),
				FullDocId:  doc.Id,
				Content:    piece.Content,
				Tokens:     piece.Tokens,
				Order:      piece.Index,
				InsertedAt: now,
			}
			insertingChunks[c.Id] = c
		}
	}

	if len(newDocs) == 0 {
		return &Summary{}, nil
	}

	// Vector store first, then the KV namespaces. All chunks of the batch
	// go to both stores; a chunk record without its embedding (or the
	// reverse) only occurs if an upsert below fails part-way.
	if err := p.vectors.Upsert(ctx, insertingChunks); err != nil {
		return nil, err
	}
	if err := p.docs.Upsert(ctx, newDocs); err != nil {
		return nil, err
	}
	if err := p.chunks.Upsert(ctx, insertingChunks); err != nil {
		return nil, err
	}

	summary := &Summary{
		Documents: len(newDocs),
		Chunks:    len(insertingChunks),
	}
	p.logger.Info("processed new docs",
		"documents", summary.Documents, "chunks", summary.Chunks)
	return summary, nil
}
