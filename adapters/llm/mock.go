package llm

import (
	"context"
	"fmt"

	"github.com/suaralabs/suara/domain/repositories"
)

// MockLLM is a canned-response language model for tests and keyless
// startup. Not safe for concurrent use; the Calls counter exists for test
// assertions.
type MockLLM struct {
	Response string
	Err      error
	Calls    int
}

// Ensure MockLLM implements the LanguageModel interface
var _ repositories.LanguageModel = (*MockLLM)(nil)

// NewMockLLM creates a mock language model
func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// Complete implements repositories.LanguageModel
func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("I heard you say %q. Tell me more!", prompt), nil
}
