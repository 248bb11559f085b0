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


package ai

import (
	"errors"
	"os"
	"strings"
)

// Config holds configuration for the model service providers.
type Config struct {
	// Host is the base URL for the completion service API. Empty means the
	// client's default (the public OpenAI endpoint).
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	Host string

	// EmbeddingHost is the base URL for the embedding service API.
	// Empty means the same default as Host.
	EmbeddingHost string

	// BestModel is the higher-capability completion model identifier.
	BestModel string

	// CheapModel is the cheaper, faster completion model identifier.
	CheapModel string

	// EmbeddingModel is the model identifier to use for text embeddings.
	EmbeddingModel string

	// APIKey authenticates against the services. Falls back to the
	// OPENAI_API_KEY environment variable, then to "none" for local
	// OpenAI-compatible services that don't require authentication.
	APIKey string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets both completion and embedding hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
		c.EmbeddingHost = host
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithBestModel sets the higher-capability completion model identifier.
func WithBestModel(model string) ConfigOption {
	return func(c *Config) {
		c.BestModel = model
	}
}

// WithCheapModel sets the cheaper completion model identifier.
func WithCheapModel(model string) ConfigOption {
	return func(c *Config) {
		c.CheapModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the API key used for both services.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// DefaultConfig returns a Config targeting the public OpenAI endpoint with
// the models the system was designed around.
func DefaultConfig() *Config {
	return &Config{
		BestModel:      "gpt-4o",
		CheapModel:     "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. Non-empty
// hosts get the /v1 suffix required by most OpenAI-compatible APIs
// (Ollama, LocalAI, vLLM, etc), and a usable API key is resolved.
func (c *Config) Normalize() {
	c.Host = normalizeHost(c.Host)
	c.EmbeddingHost = normalizeHost(c.EmbeddingHost)

	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = "none"
	}
}

func normalizeHost(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.BestModel == "" {
		return errors.New("ai config: BestModel is required")
	}
	if c.CheapModel == "" {
		return errors.New("ai config: CheapModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
