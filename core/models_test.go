package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentID(t *testing.T) {
	id := NewDocumentID()
	assert.True(t, strings.HasPrefix(string(id), DocumentIDPrefix))

	// IDs are random, not content-addressed: two calls never collide.
	other := NewDocumentID()
	assert.NotEqual(t, id, other)
}

func TestNewChunkID(t *testing.T) {
	id := NewChunkID()
	assert.True(t, strings.HasPrefix(string(id), ChunkIDPrefix))
	assert.NotEqual(t, id, NewChunkID())
}

func TestDocumentMUSRoundTrip(t *testing.T) {
	doc := Document{
		Id:      NewDocumentID(),
		Content: "the quick brown fox",
	}
	doc.InsertedAt = doc.InsertedAt.UTC()

	bs := make([]byte, DocumentMUS.Size(doc))
	n := DocumentMUS.Marshal(doc, bs)
	require.Equal(t, len(bs), n)

	got, n, err := DocumentMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, doc.Id, got.Id)
	assert.Equal(t, doc.Content, got.Content)
}

func TestChunkEmbeddingMUSRoundTrip(t *testing.T) {
	emb := ChunkEmbedding{
		ChunkId:   NewChunkID(),
		FullDocId: NewDocumentID(),
		Content:   "chunk text",
		Vector:    []float32{0.25, -0.5, 1.0},
	}

	bs := make([]byte, ChunkEmbeddingMUS.Size(emb))
	ChunkEmbeddingMUS.Marshal(emb, bs)

	got, _, err := ChunkEmbeddingMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, emb.ChunkId, got.ChunkId)
	assert.Equal(t, emb.FullDocId, got.FullDocId)
	assert.Equal(t, emb.Vector, got.Vector)
}

func TestChunkMUSTruncated(t *testing.T) {
	chunk := Chunk{Id: NewChunkID(), FullDocId: NewDocumentID(), Content: "text", Tokens: 2}

	bs := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, bs)

	_, _, err := ChunkMUS.Unmarshal(bs[:len(bs)/2])
	require.Error(t, err)
}
