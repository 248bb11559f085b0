package ai

import (
	"context"

	"github.com/MetrodataTeam/nano-graphrag/limiter"
)

// limitedCompleter applies a concurrency bound around a Completer.
type limitedCompleter struct {
	inner Completer
	lim   *limiter.Limiter
}

var _ Completer = (*limitedCompleter)(nil)

// LimitCompleter wraps a Completer so that at most the limiter's bound of
// completions run concurrently. The wrapped completer has an identical
// signature; errors from the inner call propagate unchanged and the slot
// is released on every exit path.
func LimitCompleter(c Completer, lim *limiter.Limiter) Completer {
	return &limitedCompleter{inner: c, lim: lim}
}

func (c *limitedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var result string
	err := c.lim.Do(ctx, func() error {
		var err error
		result, err = c.inner.Complete(ctx, prompt)
		return err
	})
	return result, err
}

// limitedEmbedder applies a concurrency bound around an Embedder.
type limitedEmbedder struct {
	inner Embedder
	lim   *limiter.Limiter
}

var _ Embedder = (*limitedEmbedder)(nil)

// LimitEmbedder wraps an Embedder so that at most the limiter's bound of
// embedding calls run concurrently. Each EmbedText/EmbedTexts invocation
// occupies one slot regardless of batch size.
func LimitEmbedder(e Embedder, lim *limiter.Limiter) Embedder {
	return &limitedEmbedder{inner: e, lim: lim}
}

func (e *limitedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var result []float32
	err := e.lim.Do(ctx, func() error {
		var err error
		result, err = e.inner.EmbedText(ctx, text)
		return err
	})
	return result, err
}

func (e *limitedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	var result [][]float32
	err := e.lim.Do(ctx, func() error {
		var err error
		result, err = e.inner.EmbedTexts(ctx, texts)
		return err
	})
	return result, err
}
