package repositories

import (
	"context"

	"github.com/suaralabs/suara/domain"
)

// SpeechSynthesizer turns completion text into a playable audio artifact.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (domain.Audio, error)
}
