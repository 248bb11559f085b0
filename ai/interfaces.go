package ai

import "context"

// Completer turns a prompt into a model completion.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends the prompt to the underlying model and returns the
	// completion text unchanged. Returns an error if the call fails.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates the model collaborators for convenient initialization
// and lifecycle management. Two completion variants are exposed: a
// higher-capability model and a cheaper, faster one.
type Provider interface {
	// BestCompleter returns the higher-capability completion model.
	BestCompleter() Completer

	// CheapCompleter returns the cheaper, faster completion model.
	CheapCompleter() Completer

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
