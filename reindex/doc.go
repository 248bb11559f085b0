// Package reindex rebuilds the vector index from persisted chunk records.
//
// When the embedding model changes, vectors already in the store no longer
// live in the same space as freshly embedded queries. The Reindexer walks
// every chunk in the key-value store and pushes it back through the vector
// store in batches, re-embedding as it goes. Failed batches are retried
// with exponential backoff, and progress can be reported to any writer.
package reindex
