package storage

import (
	"context"

	"github.com/MetrodataTeam/nano-graphrag/core"
)

// KVStore provides namespaced key-value storage for one record type.
// Implementations must be thread-safe and support concurrent access.
type KVStore[T any] interface {
	// Namespace returns the logical partition this store writes to,
	// e.g. "full_docs" or "text_chunks".
	Namespace() string

	// Upsert writes all records in the mapping, inserting or replacing by id.
	Upsert(ctx context.Context, records map[core.ID]T) error

	// Get retrieves a single record by id.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id core.ID) (T, error)

	// Has reports whether a record with the given id exists.
	Has(ctx context.Context, id core.ID) (bool, error)

	// ForEach visits every record in the namespace in key order.
	// Iteration stops on the first error from fn.
	ForEach(ctx context.Context, fn func(id core.ID, record T) error) error

	// Count returns the number of records in the namespace.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}

// VectorStore indexes chunk embeddings for similarity search. Upsert
// computes embeddings for the given chunks through the store's embedding
// collaborator before indexing them.
type VectorStore interface {
	// Namespace returns the logical partition this store writes to.
	Namespace() string

	// Upsert embeds and indexes all chunks in the mapping, keyed by chunk id.
	Upsert(ctx context.Context, chunks map[core.ID]*core.Chunk) error

	// Query embeds the query text and returns the topK most similar chunks,
	// ordered by similarity score descending.
	Query(ctx context.Context, query string, topK int) ([]*core.SearchResult, error)

	// Count returns the number of indexed chunk embeddings.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}
