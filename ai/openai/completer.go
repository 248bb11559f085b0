package openai

import (
	"context"
	"log/slog"

	"github.com/MetrodataTeam/nano-graphrag/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements ai.Completer using OpenAI-compatible chat APIs.
type Completer struct {
	client *openai.LLM
	model  string
	logger *slog.Logger
}

var _ ai.Completer = (*Completer)(nil)

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config, model string) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithModel(model),
	}
	if config.Host != "" {
		opts = append(opts, openai.WithBaseURL(config.Host))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		model:  model,
		logger: slog.Default().With("component", "openai-completer", "model", model),
	}, nil
}

// NewCompleter creates a completion client for the given model using the
// provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config, model string) (ai.Completer, error) {
	return newCompleter(config, model)
}

// Complete sends the prompt to the model and returns the completion text
// unchanged.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("requesting completion", "promptLength", len(prompt))

	result, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt)
	if err != nil {
		c.logger.Error("completion failed", "err", err)
		return "", err
	}
	return result, nil
}
