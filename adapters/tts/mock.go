package tts

import (
	"context"

	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/domain/repositories"
)

// MockTTS returns deterministic fake audio. Used in tests and as the
// synthesizer when no API key is configured. Not safe for concurrent use;
// the Calls counter exists for test assertions.
type MockTTS struct {
	Err   error
	Calls int
}

// Ensure MockTTS implements the SpeechSynthesizer interface
var _ repositories.SpeechSynthesizer = (*MockTTS)(nil)

// NewMockTTS creates a mock synthesizer
func NewMockTTS() *MockTTS {
	return &MockTTS{}
}

// Synthesize implements repositories.SpeechSynthesizer
func (m *MockTTS) Synthesize(ctx context.Context, text string) (domain.Audio, error) {
	m.Calls++
	if m.Err != nil {
		return domain.Audio{}, m.Err
	}
	return domain.Audio{
		Data:        append([]byte("mock-audio:"), text...),
		ContentType: "audio/mpeg",
	}, nil
}
