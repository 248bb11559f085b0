package graphrag

import "errors"

var (
	// ErrWorkingDirRequired indicates no working directory was configured
	// for on-disk storage.
	ErrWorkingDirRequired = errors.New("working directory is required")

	// ErrInvalidChunkTokenSize indicates a non-positive chunk token size.
	ErrInvalidChunkTokenSize = errors.New("chunk token size must be positive")

	// ErrInvalidChunkOverlap indicates a negative overlap or an overlap
	// at least as large as the chunk token size.
	ErrInvalidChunkOverlap = errors.New("chunk overlap must be non-negative and smaller than chunk token size")

	// ErrInvalidBatchSize indicates a non-positive embedding batch size.
	ErrInvalidBatchSize = errors.New("embedding batch size must be positive")

	// ErrInvalidConcurrency indicates a non-positive concurrency bound.
	ErrInvalidConcurrency = errors.New("max concurrency must be positive")

	// ErrPartialStores indicates only some of the custom stores were
	// injected. Docs, Chunks, and Vectors must be provided together.
	ErrPartialStores = errors.New("custom stores must be provided together")

	// ErrClosed indicates an operation on a closed instance.
	ErrClosed = errors.New("graphrag instance is closed")
)
