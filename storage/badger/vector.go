package badger

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/MetrodataTeam/nano-graphrag/ai"
	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/storage"
	"github.com/dgraph-io/badger/v4"
	"golang.org/x/sync/errgroup"
)

const defaultEmbeddingBatchSize = 16

// VectorStore implements storage.VectorStore for BadgerDB. Chunk text is
// embedded through the injected embedding collaborator (already
// concurrency-limited by the orchestrator) and indexed as unit vectors, so
// similarity queries reduce to a brute-force dot-product scan.
type VectorStore struct {
	backend   *Backend
	embedder  ai.Embedder
	namespace string
	batchSize int
	logger    *slog.Logger
}

var _ storage.VectorStore = (*VectorStore)(nil)

// VectorStoreOption configures a VectorStore.
type VectorStoreOption func(*VectorStore)

// WithEmbeddingBatchSize sets how many chunks are embedded per collaborator
// call. Default is 16.
func WithEmbeddingBatchSize(size int) VectorStoreOption {
	return func(s *VectorStore) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewVectorStore creates a vector store over the backend for the
// "text_chunks" namespace.
func NewVectorStore(backend *Backend, embedder ai.Embedder, opts ...VectorStoreOption) storage.VectorStore {
	s := &VectorStore{
		backend:   backend,
		embedder:  embedder,
		namespace: NamespaceTextChunks,
		batchSize: defaultEmbeddingBatchSize,
		logger:    slog.Default().With("store", "vectors"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the store's namespace.
func (s *VectorStore) Namespace() string {
	return s.namespace
}

// Upsert embeds and indexes all chunks in the mapping. Embedding batches
// run concurrently; admission control happens inside the embedding
// collaborator's limiter.
func (s *VectorStore) Upsert(ctx context.Context, chunks map[core.ID]*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	// Deterministic batch layout regardless of map iteration order.
	ids := slices.Sorted(maps.Keys(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(ids); start += s.batchSize {
		batch := ids[start:min(start+s.batchSize, len(ids))]
		g.Go(func() error {
			return s.upsertBatch(gctx, batch, chunks)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Debug("indexed chunk embeddings", "count", len(chunks))
	return nil
}

func (s *VectorStore) upsertBatch(ctx context.Context, ids []core.ID, chunks map[core.ID]*core.Chunk) error {
	texts := make([]string, len(ids))
	for i, id := range ids {
		texts[i] = chunks[id].Content
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunk batch: %w", err)
	}
	if len(vectors) != len(ids) {
		return fmt.Errorf("%w: expected %d, received %d",
			storage.ErrEmbeddingMismatch, len(ids), len(vectors))
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for i, id := range ids {
			chunk := chunks[id]
			emb := &core.ChunkEmbedding{
				ChunkId:   id,
				FullDocId: chunk.FullDocId,
				Content:   chunk.Content,
				Vector:    NormalizeVector(vectors[i]),
			}
			if err := tx.Set(makeVectorKey(s.namespace, id), storage.MarshalChunkEmbedding(emb)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Query embeds the query text and returns the topK most similar chunks.
func (s *VectorStore) Query(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	vector = NormalizeVector(vector)

	var results []*core.SearchResult
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorPrefix(s.namespace)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var emb *core.ChunkEmbedding
			err := iter.Item().Value(func(val []byte) error {
				var uerr error
				emb, uerr = storage.UnmarshalChunkEmbedding(val)
				return uerr
			})
			if err != nil {
				return err
			}
			if len(emb.Vector) == 0 {
				continue
			}

			results = append(results, &core.SearchResult{
				ChunkId:   emb.ChunkId,
				FullDocId: emb.FullDocId,
				Content:   emb.Content,
				Score:     dotProduct(vector, emb.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the number of indexed chunk embeddings.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorPrefix(s.namespace)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Close is a no-op; the shared backend owns the database handle.
func (s *VectorStore) Close() error {
	return nil
}

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
