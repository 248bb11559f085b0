// Copyright 2025 MetrodataTeam
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"log/slog"

	"github.com/MetrodataTeam/nano-graphrag/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the best/cheap completion clients and the embedder.
type Provider struct {
	config   *ai.Config
	best     *Completer
	cheap    *Completer
	embedder *Embedder
	logger   *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a new provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	best, err := newCompleter(config, config.BestModel)
	if err != nil {
		return nil, err
	}

	cheap, err := newCompleter(config, config.CheapModel)
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		best:     best,
		cheap:    cheap,
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// BestCompleter returns the higher-capability completion model.
func (p *Provider) BestCompleter() ai.Completer {
	return p.best
}

// CheapCompleter returns the cheaper, faster completion model.
func (p *Provider) CheapCompleter() ai.Completer {
	return p.cheap
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
