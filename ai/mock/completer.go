package mock

import (
	"context"
	"sync/atomic"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via a function field.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, the prompt is echoed back with a fixed prefix.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	callCount atomic.Int64
}

// NewMockCompleter creates a mock completer with default echo behavior.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns the injected behavior's result, or echoes the prompt.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.callCount.Add(1)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "completion: " + prompt, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return int(m.callCount.Load())
}
