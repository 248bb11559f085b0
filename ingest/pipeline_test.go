package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/MetrodataTeam/nano-graphrag/ai/mock"
	"github.com/MetrodataTeam/nano-graphrag/chunk"
	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/storage"
	"github.com/MetrodataTeam/nano-graphrag/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStores struct {
	docs    storage.KVStore[*core.Document]
	chunks  storage.KVStore[*core.Chunk]
	vectors storage.VectorStore
}

func setupPipeline(t *testing.T, maxTokens, overlap int) (*Pipeline, *testStores) {
	t.Helper()

	docs, chunks, vectors, backend, err := badger.NewMemoryStores(mock.NewMockEmbedder())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	splitter, err := chunk.NewSplitter("gpt-4o", maxTokens, overlap)
	require.NoError(t, err)

	p, err := NewPipeline(docs, chunks, vectors, splitter)
	require.NoError(t, err)

	return p, &testStores{docs: docs, chunks: chunks, vectors: vectors}
}

func TestNewPipelineValidation(t *testing.T) {
	splitter, err := chunk.NewSplitter("gpt-4o", 100, 10)
	require.NoError(t, err)

	docs, chunks, vectors, backend, err := badger.NewMemoryStores(mock.NewMockEmbedder())
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewPipeline(nil, chunks, vectors, splitter)
	require.ErrorIs(t, err, ErrDocumentStoreRequired)

	_, err = NewPipeline(docs, nil, vectors, splitter)
	require.ErrorIs(t, err, ErrChunkStoreRequired)

	_, err = NewPipeline(docs, chunks, nil, splitter)
	require.ErrorIs(t, err, ErrVectorStoreRequired)

	_, err = NewPipeline(docs, chunks, vectors, nil)
	require.ErrorIs(t, err, ErrSplitterRequired)
}

func TestInsertSingleShortDocument(t *testing.T) {
	p, stores := setupPipeline(t, 1200, 100)
	ctx := context.Background()

	summary, err := p.Insert(ctx, "  A single short document.  ")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.Chunks)

	docCount, err := stores.docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, docCount)

	chunkCount, err := stores.chunks.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, chunkCount)

	vecCount, err := stores.vectors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, vecCount)

	// Content is trimmed before storage and chunking.
	err = stores.docs.ForEach(ctx, func(id core.ID, doc *core.Document) error {
		assert.Equal(t, "A single short document.", doc.Content)
		return nil
	})
	require.NoError(t, err)
}

func TestInsertMultipleDocumentsPersistsAllChunks(t *testing.T) {
	// Small windows force several chunks per document.
	p, stores := setupPipeline(t, 8, 2)
	ctx := context.Background()

	summary, err := p.Insert(ctx,
		"alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu",
		"one two three four five six seven eight nine ten eleven twelve",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Documents)
	assert.Greater(t, summary.Chunks, 2)

	// Every chunk of every document reaches BOTH the key-value chunk
	// namespace and the vector store.
	chunkCount, err := stores.chunks.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary.Chunks, chunkCount)

	vecCount, err := stores.vectors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary.Chunks, vecCount)

	// Each chunk references a document created in this batch.
	docIDs := make(map[core.ID]bool)
	require.NoError(t, stores.docs.ForEach(ctx, func(id core.ID, _ *core.Document) error {
		docIDs[id] = true
		return nil
	}))
	require.Len(t, docIDs, 2)

	require.NoError(t, stores.chunks.ForEach(ctx, func(_ core.ID, c *core.Chunk) error {
		assert.True(t, docIDs[c.FullDocId])
		return nil
	}))
}

func TestInsertIsNotIdempotentByContent(t *testing.T) {
	p, stores := setupPipeline(t, 1200, 100)
	ctx := context.Background()

	_, err := p.Insert(ctx, "same text")
	require.NoError(t, err)
	_, err = p.Insert(ctx, "same text")
	require.NoError(t, err)

	// IDs are generated fresh, never content-addressed: two inserts of
	// identical text yield two documents.
	count, err := stores.docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertSkipsBlankTexts(t *testing.T) {
	p, stores := setupPipeline(t, 1200, 100)
	ctx := context.Background()

	summary, err := p.Insert(ctx, "", "   ", "\n\t")
	require.NoError(t, err)
	assert.Zero(t, summary.Documents)
	assert.Zero(t, summary.Chunks)

	count, err := stores.docs.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInsertPropagatesEmbedderFailure(t *testing.T) {
	failure := errors.New("embedding service down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, failure
	}

	docs, chunks, vectors, backend, err := badger.NewMemoryStores(embedder)
	require.NoError(t, err)
	defer backend.Close()

	splitter, err := chunk.NewSplitter("gpt-4o", 1200, 100)
	require.NoError(t, err)

	p, err := NewPipeline(docs, chunks, vectors, splitter)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = p.Insert(ctx, "some document")
	require.ErrorIs(t, err, failure)

	// The vector upsert failed before the KV upserts ran; the batch is
	// absent from the key-value namespaces.
	count, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
