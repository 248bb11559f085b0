package badger

import (
	"context"
	"log/slog"

	"github.com/MetrodataTeam/nano-graphrag/core"
	"github.com/MetrodataTeam/nano-graphrag/storage"
	"github.com/dgraph-io/badger/v4"
)

// KVStore implements storage.KVStore for BadgerDB. Records of one
// namespace share a key prefix in the backing database; serialization is
// injected so one implementation serves every record type.
type KVStore[T any] struct {
	backend   *Backend
	namespace string
	marshal   func(T) []byte
	unmarshal func([]byte) (T, error)
	logger    *slog.Logger
}

// NewKVStore creates a KV store bound to a namespace of the backend.
func NewKVStore[T any](
	backend *Backend,
	namespace string,
	marshal func(T) []byte,
	unmarshal func([]byte) (T, error),
) *KVStore[T] {
	return &KVStore[T]{
		backend:   backend,
		namespace: namespace,
		marshal:   marshal,
		unmarshal: unmarshal,
		logger:    slog.Default().With("store", namespace),
	}
}

// NewDocumentStore creates the "full_docs" KV store over the backend.
func NewDocumentStore(backend *Backend) storage.KVStore[*core.Document] {
	return NewKVStore(backend, NamespaceFullDocs, storage.MarshalDocument, storage.UnmarshalDocument)
}

// NewChunkStore creates the "text_chunks" KV store over the backend.
func NewChunkStore(backend *Backend) storage.KVStore[*core.Chunk] {
	return NewKVStore(backend, NamespaceTextChunks, storage.MarshalChunk, storage.UnmarshalChunk)
}

var _ storage.KVStore[*core.Document] = (*KVStore[*core.Document])(nil)

// Namespace returns the store's namespace.
func (s *KVStore[T]) Namespace() string {
	return s.namespace
}

// Upsert writes all records in the mapping, inserting or replacing by id.
func (s *KVStore[T]) Upsert(ctx context.Context, records map[core.ID]T) error {
	if len(records) == 0 {
		return nil
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for id, record := range records {
			key := makeRecordKey(s.namespace, id)
			if err := tx.Set(key, s.marshal(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.logger.Debug("upserted records", "count", len(records))
	return nil
}

// Get retrieves a single record by id.
func (s *KVStore[T]) Get(ctx context.Context, id core.ID) (T, error) {
	var record T
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRecordKey(s.namespace, id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var uerr error
			record, uerr = s.unmarshal(val)
			return uerr
		})
	}, false)
	return record, err
}

// Has reports whether a record with the given id exists.
func (s *KVStore[T]) Has(ctx context.Context, id core.ID) (bool, error) {
	found := false
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeRecordKey(s.namespace, id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// ForEach visits every record in the namespace in key order.
func (s *KVStore[T]) ForEach(ctx context.Context, fn func(id core.ID, record T) error) error {
	prefix := makeNamespacePrefix(s.namespace)
	return s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			var record T
			err := item.Value(func(val []byte) error {
				var uerr error
				record, uerr = s.unmarshal(val)
				return uerr
			})
			if err != nil {
				return err
			}
			if err := fn(recordIDFromKey(prefix, item.Key()), record); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// Count returns the number of records in the namespace.
func (s *KVStore[T]) Count(ctx context.Context) (int, error) {
	count := 0
	prefix := makeNamespacePrefix(s.namespace)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
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
func (s *KVStore[T]) Close() error {
	return nil
}
