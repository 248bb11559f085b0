package core

import (
	"time"

	"github.com/google/uuid"
)

// ID is a unique identifier for domain entities. IDs carry a short prefix
// identifying the entity kind ("doc-", "chunk-") followed by a random UUID.
// IDs are generated fresh on every insert and are never derived from content,
// so inserting the same text twice yields two distinct documents.
type ID string

// ID prefixes for the entity kinds stored by the system.
const (
	DocumentIDPrefix = "doc-"
	ChunkIDPrefix    = "chunk-"
)

// NewDocumentID generates a fresh document ID.
func NewDocumentID() ID {
	return ID(DocumentIDPrefix + uuid.NewString())
}

// NewChunkID generates a fresh chunk ID.
func NewChunkID() ID {
	return ID(ChunkIDPrefix + uuid.NewString())
}

// Document is a raw text document as handed to Insert, trimmed of
// surrounding whitespace. Documents are immutable once stored.
type Document struct {
	Id         ID
	Content    string
	InsertedAt time.Time
}

// Chunk is a token-bounded slice of a document's text. FullDocId refers to
// the document the chunk was produced from; Order is the chunk's position
// within that document.
type Chunk struct {
	Id         ID
	FullDocId  ID
	Content    string
	Tokens     int
	Order      int
	InsertedAt time.Time
}

// ChunkEmbedding is the record indexed by the vector store: the chunk's
// text together with its embedding vector. Vectors are normalized to unit
// length so cosine similarity reduces to a dot product.
type ChunkEmbedding struct {
	ChunkId   ID
	FullDocId ID
	Content   string
	Vector    []float32
}

// SearchResult is a vector store match for a similarity query.
type SearchResult struct {
	ChunkId   ID
	FullDocId ID
	Content   string
	Score     float32
}
