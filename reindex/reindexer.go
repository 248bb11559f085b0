package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/storage"
)

const (
	// DefaultBatchSize is the default number of chunks re-embedded per batch.
	DefaultBatchSize = 100

	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	defaultReportInterval = 100
)

// Reindexer rebuilds the vector store from the persisted chunk records,
// re-embedding every chunk. Used after switching embedding models, when
// the indexed vectors no longer match what queries will be embedded with.
type Reindexer struct {
	chunks         storage.KVStore[*core.Chunk]
	vectors        storage.VectorStore
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Reindexer.
type Option func(*Reindexer)

// WithBatchSize sets how many chunks are re-embedded per vector store
// upsert. Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(r *Reindexer) {
		if size > 0 {
			r.batchSize = size
		}
	}
}

// WithRetry configures retry behavior for failed embedding batches.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(r *Reindexer) {
		r.maxRetries = maxRetries
		r.retryBaseDelay = baseDelay
	}
}

// WithProgress enables progress reporting to the given writer.
func WithProgress(w io.Writer, reportInterval int) Option {
	return func(r *Reindexer) {
		r.progressWriter = w
		if reportInterval > 0 {
			r.reportInterval = reportInterval
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reindexer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReindexer creates a reindexer over the given stores.
func NewReindexer(chunks storage.KVStore[*core.Chunk], vectors storage.VectorStore, opts ...Option) (*Reindexer, error) {
	if chunks == nil {
		return nil, ErrChunkStoreRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}

	r := &Reindexer{
		chunks:         chunks,
		vectors:        vectors,
		batchSize:      DefaultBatchSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		reportInterval: defaultReportInterval,
		logger:         slog.Default().With("component", "reindexer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Report summarizes a completed reindex run.
type Report struct {
	Chunks  int
	Batches int
	Elapsed time.Duration
}

// Run re-embeds every persisted chunk and upserts the result into the
// vector store. Batches that fail are retried with exponential backoff;
// a batch that exhausts its retries aborts the run.
func (r *Reindexer) Run(ctx context.Context) (*Report, error) {
	total, err := r.chunks.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting chunks: %w", err)
	}

	r.logger.Info("reindexing chunks", "total", total, "batchSize", r.batchSize)

	var progress *ProgressTracker
	if r.progressWriter != nil {
		progress = NewProgressTracker(r.progressWriter, total, r.reportInterval)
		progress.Start()
	}

	start := time.Now()
	report := &Report{}

	batch := make(map[core.ID]*core.Chunk, r.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		count := len(batch)
		err := RetryWithBackoff(ctx, func() error {
			return r.vectors.Upsert(ctx, batch)
		}, r.maxRetries, r.retryBaseDelay)
		if err != nil {
			return fmt.Errorf("reindexing batch of %d chunks after %d attempts: %w",
				count, r.maxRetries, err)
		}

		report.Chunks += count
		report.Batches++
		if progress != nil {
			progress.Increment(count)
		}
		batch = make(map[core.ID]*core.Chunk, r.batchSize)
		return nil
	}

	err = r.chunks.ForEach(ctx, func(id core.ID, chunk *core.Chunk) error {
		batch[id] = chunk
		if len(batch) >= r.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress.Finish()
	}

	report.Elapsed = time.Since(start)
	r.logger.Info("reindex complete",
		"chunks", report.Chunks, "batches", report.Batches, "elapsed", report.Elapsed)
	return report, nil
}
