package graphrag

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetrodataTeam/nano-graphrag/ai/mock"
)

func newTestInstance(t *testing.T, opts ...Option) (*GraphRAG, *mock.MockProvider) {
	t.Helper()

	provider := mock.NewMockProvider()
	opts = append([]Option{WithInMemory(), WithProvider(provider)}, opts...)

	rag, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { rag.Close() })
	return rag, provider
}

func TestNew_OnDisk(t *testing.T) {
	workingDir := filepath.Join(t.TempDir(), "rag-cache")
	provider := mock.NewMockProvider()

	rag, err := New(WithWorkingDir(workingDir), WithProvider(provider))
	require.NoError(t, err)
	require.NotNil(t, rag)
	defer rag.Close()

	assert.DirExists(t, workingDir, "working directory should be created")

	ctx := context.Background()
	require.NoError(t, rag.Insert(ctx, "persistent content"))

	count, err := rag.docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(WithChunking(100, 100))
	assert.ErrorIs(t, err, ErrInvalidChunkOverlap)
}

func TestInsertAndSearch(t *testing.T) {
	rag, _ := newTestInstance(t)
	ctx := context.Background()

	err := rag.Insert(ctx,
		"the capital of france is paris",
		"badger is an embeddable key-value store")
	require.NoError(t, err)

	results, err := rag.Search(ctx, "the capital of france is paris", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "the capital of france is paris", results[0].Content,
		"identical text embeds identically and must rank first")
}

func TestInsertAsync(t *testing.T) {
	rag, _ := newTestInstance(t)
	ctx := context.Background()

	require.NoError(t, rag.InsertAsync("async content"))

	// Poll until the pool has processed the insert.
	deadline := time.Now().Add(5 * time.Second)
	for {
		count, err := rag.docs.Count(ctx)
		require.NoError(t, err)
		if count == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("async insert not processed, have %d documents", count)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestQuery_PassesThroughCompleterResult(t *testing.T) {
	rag, provider := newTestInstance(t)
	ctx := context.Background()

	provider.Best().CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "best answer", nil
	}
	provider.Cheap().CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "cheap answer", nil
	}

	answer, err := rag.Query(ctx, "what is the capital of france?")
	require.NoError(t, err)
	assert.Equal(t, "best answer", answer, "answer must be returned unchanged")
	assert.Equal(t, 1, provider.Best().CallCount())
	assert.Equal(t, 0, provider.Cheap().CallCount())

	answer, err = rag.QueryCheap(ctx, "what is the capital of france?")
	require.NoError(t, err)
	assert.Equal(t, "cheap answer", answer)
	assert.Equal(t, 1, provider.Cheap().CallCount())
}

func TestQuery_PropagatesCompleterError(t *testing.T) {
	rag, provider := newTestInstance(t)

	modelErr := errors.New("model unavailable")
	provider.Best().CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", modelErr
	}

	_, err := rag.Query(context.Background(), "anything")
	assert.ErrorIs(t, err, modelErr)
}

func TestNewReindexer(t *testing.T) {
	rag, _ := newTestInstance(t)
	ctx := context.Background()

	require.NoError(t, rag.Insert(ctx, "some content to index"))

	r, err := rag.NewReindexer()
	require.NoError(t, err)

	report, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Chunks)
}

func TestClose(t *testing.T) {
	provider := mock.NewMockProvider()
	rag, err := New(WithInMemory(), WithProvider(provider))
	require.NoError(t, err)

	require.NoError(t, rag.Close())
	require.NoError(t, rag.Close(), "double close should be a no-op")

	assert.ErrorIs(t, rag.Insert(context.Background(), "text"), ErrClosed)
	_, err = rag.Query(context.Background(), "q")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = rag.Search(context.Background(), "q", 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, rag.InsertAsync("text"), ErrClosed)
}
