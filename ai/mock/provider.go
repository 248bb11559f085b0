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


package mock

import "github.com/MetrodataTeam/nano-graphrag/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock completer and embedder instances.
type MockProvider struct {
	best     *MockCompleter
	cheap    *MockCompleter
	embedder *MockEmbedder
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns the concrete type so tests can reach the underlying mocks for
// behavior injection and call assertions.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		best:     NewMockCompleter(),
		cheap:    NewMockCompleter(),
		embedder: NewMockEmbedder(),
	}
}

// BestCompleter returns the mock best completer.
func (p *MockProvider) BestCompleter() ai.Completer {
	return p.best
}

// CheapCompleter returns the mock cheap completer.
func (p *MockProvider) CheapCompleter() ai.Completer {
	return p.cheap
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

// Best returns the concrete mock for the best completer.
func (p *MockProvider) Best() *MockCompleter {
	return p.best
}

// Cheap returns the concrete mock for the cheap completer.
func (p *MockProvider) Cheap() *MockCompleter {
	return p.cheap
}

// MockEmbedder returns the concrete mock embedder.
func (p *MockProvider) MockEmbedder() *MockEmbedder {
	return p.embedder
}
