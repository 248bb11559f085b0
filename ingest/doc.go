// Package ingest provides the document ingestion pipeline.
//
// One Insert batch runs a linear flow: trim and identify documents, split
// them into token-bounded chunks, embed and index every chunk in the
// vector store, then persist documents and chunks to their key-value
// namespaces. Both stores always receive the full chunk set of the batch,
// regardless of how many documents the batch holds.
package ingest
