package repositories

import "context"

// LanguageModel abstracts any completion/LLM provider.
type LanguageModel interface {
	// Complete takes a user prompt and returns the model's reply.
	Complete(ctx context.Context, prompt string) (string, error)
}
