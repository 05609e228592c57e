package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/suaralabs/suara/domain/repositories"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiConfig holds configuration for the GeminiLLM adapter
// Required fields:
// - APIKey: Your Google AI API key
// Optional fields with defaults:
// - Model: model id (default: "gemini-2.0-flash")
// - MaxOutputTokens: completion token cap (default: 256)
// - Temperature: sampling temperature (default: 0.7)
// - Timeout: per-request deadline (default: 30s)
type GeminiConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Temperature     float32
	Timeout         time.Duration
}

// GeminiLLM implements the LanguageModel interface using Google's Gemini API
type GeminiLLM struct {
	client          *genai.Client
	model           string
	maxOutputTokens int
	temperature     float32
	timeout         time.Duration
	logger          *zap.Logger
}

// Ensure GeminiLLM implements the LanguageModel interface
var _ repositories.LanguageModel = (*GeminiLLM)(nil)

// NewGeminiLLM creates a new Gemini completion client
func NewGeminiLLM(config GeminiConfig, logger *zap.Logger) (*GeminiLLM, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Google AI API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultGeminiModel
		logger.Info("Using default Gemini model", zap.String("model", model))
	}

	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = defaultMaxTokens
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}

	return &GeminiLLM{
		client:          client,
		model:           model,
		maxOutputTokens: maxOutputTokens,
		temperature:     temperature,
		timeout:         timeout,
		logger:          logger,
	}, nil
}

// Complete sends the prompt as a single-turn generation and returns the
// generated text.
func (g *GeminiLLM) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(defaultSystemPrompt, genai.RoleUser),
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	generateConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: int32(g.maxOutputTokens),
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, generateConfig)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(response.Candidates) == 0 ||
		response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("completion returned no content")
	}

	var text string
	for _, part := range response.Candidates[0].Content.Parts {
		text += part.Text
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("completion returned empty text")
	}

	g.logger.Info("Completion generated",
		zap.String("model", g.model),
		zap.Int("promptLength", len(prompt)),
		zap.Int("completionLength", len(text)))

	return text, nil
}
