package badger

import (
	"context"
	"testing"
	"time"

	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDocumentStore(t *testing.T) storage.KVStore[*core.Document] {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return NewDocumentStore(backend)
}

func TestKVStoreNamespace(t *testing.T) {
	store := setupDocumentStore(t)
	assert.Equal(t, NamespaceFullDocs, store.Namespace())
}

func TestKVStoreUpsertAndGet(t *testing.T) {
	store := setupDocumentStore(t)
	ctx := context.Background()

	doc := &core.Document{
		Id:         core.NewDocumentID(),
		Content:    "hello world",
		InsertedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Upsert(ctx, map[core.ID]*core.Document{doc.Id: doc}))

	got, err := store.Get(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, doc.Id, got.Id)
	assert.Equal(t, "hello world", got.Content)
}

func TestKVStoreGetMissing(t *testing.T) {
	store := setupDocumentStore(t)

	_, err := store.Get(context.Background(), core.NewDocumentID())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestKVStoreHas(t *testing.T) {
	store := setupDocumentStore(t)
	ctx := context.Background()

	doc := &core.Document{Id: core.NewDocumentID(), Content: "x"}
	require.NoError(t, store.Upsert(ctx, map[core.ID]*core.Document{doc.Id: doc}))

	found, err := store.Has(ctx, doc.Id)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.Has(ctx, core.NewDocumentID())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKVStoreUpsertReplaces(t *testing.T) {
	store := setupDocumentStore(t)
	ctx := context.Background()

	id := core.NewDocumentID()
	require.NoError(t, store.Upsert(ctx, map[core.ID]*core.Document{
		id: {Id: id, Content: "first"},
	}))
	require.NoError(t, store.Upsert(ctx, map[core.ID]*core.Document{
		id: {Id: id, Content: "second"},
	}))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestKVStoreForEach(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	chunks := NewChunkStore(backend)
	ctx := context.Background()

	docID := core.NewDocumentID()
	batch := make(map[core.ID]*core.Chunk)
	for i := 0; i < 5; i++ {
		id := core.NewChunkID()
		batch[id] = &core.Chunk{Id: id, FullDocId: docID, Content: "piece", Tokens: 1, Order: i}
	}
	require.NoError(t, chunks.Upsert(ctx, batch))

	seen := 0
	err = chunks.ForEach(ctx, func(id core.ID, chunk *core.Chunk) error {
		assert.Equal(t, id, chunk.Id)
		assert.Equal(t, docID, chunk.FullDocId)
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)
}

func TestKVStoreNamespacesAreIsolated(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	docs := NewDocumentStore(backend)
	chunks := NewChunkStore(backend)
	ctx := context.Background()

	docID := core.NewDocumentID()
	require.NoError(t, docs.Upsert(ctx, map[core.ID]*core.Document{
		docID: {Id: docID, Content: "doc"},
	}))

	count, err := chunks.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
