package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://api.elevenlabs.io/v1"
	defaultVoiceID    = "gPWeWJBcOrH90ldfr24o"
	defaultModelID    = "eleven_multilingual_v2"
	defaultStability  = 0.5
	defaultClarity    = 0.75
	defaultTimeout    = 60 * time.Second
	defaultRPS        = 2.0
	maxErrorBody      = 4096
)

// ElevenLabsConfig holds configuration for the ElevenLabsTTS adapter
// Required fields:
// - APIKey: Your Eleven Labs API key
// Optional fields with defaults:
// - APIBaseURL: The base URL for the Eleven Labs API (default: "https://api.elevenlabs.io/v1")
// - VoiceID: The voice ID to use (default: "gPWeWJBcOrH90ldfr24o")
// - ModelID: The model ID to use (default: "eleven_multilingual_v2")
// - Stability: Voice stability value between 0 and 1 (default: 0.5)
// - Clarity: Voice clarity/similarity boost value between 0 and 1 (default: 0.75)
// - Timeout: Per-request deadline (default: 60s)
// - RequestsPerSecond: Outbound rate limit (default: 2)
type ElevenLabsConfig struct {
	APIKey            string
	APIBaseURL        string
	VoiceID           string
	ModelID           string
	Stability         float64
	Clarity           float64
	Timeout           time.Duration
	RequestsPerSecond float64
}

// ElevenLabsTTS implements the SpeechSynthesizer interface using the
// Eleven Labs API. Each call returns the whole artifact; the cache layer
// makes repeat synthesis of identical text unnecessary.
type ElevenLabsTTS struct {
	apiKey     string
	apiBaseURL string
	voiceID    string
	modelID    string
	stability  float64
	clarity    float64
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Ensure ElevenLabsTTS implements the SpeechSynthesizer interface
var _ repositories.SpeechSynthesizer = (*ElevenLabsTTS)(nil)

// elevenLabsVoiceSettings represents voice settings for Eleven Labs API
type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// elevenLabsRequest represents the request payload for Eleven Labs TTS API
type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

// ValidateElevenLabsConfig validates the ElevenLabsConfig
func ValidateElevenLabsConfig(config ElevenLabsConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("eleven labs API key is required")
	}

	if config.Stability != 0 && (config.Stability < 0 || config.Stability > 1) {
		return fmt.Errorf("stability must be between 0 and 1, got %f", config.Stability)
	}

	if config.Clarity != 0 && (config.Clarity < 0 || config.Clarity > 1) {
		return fmt.Errorf("clarity must be between 0 and 1, got %f", config.Clarity)
	}

	if config.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %f", config.RequestsPerSecond)
	}

	return nil
}

// NewElevenLabsTTS creates a new Eleven Labs TTS instance
func NewElevenLabsTTS(config ElevenLabsConfig, logger *zap.Logger) (*ElevenLabsTTS, error) {
	if err := ValidateElevenLabsConfig(config); err != nil {
		return nil, err
	}

	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	voiceID := config.VoiceID
	if voiceID == "" {
		voiceID = defaultVoiceID
		logger.Info("Using default voice ID", zap.String("voiceID", voiceID))
	}

	modelID := config.ModelID
	if modelID == "" {
		modelID = defaultModelID
	}

	stability := config.Stability
	if stability == 0 {
		stability = defaultStability
	}

	clarity := config.Clarity
	if clarity == 0 {
		clarity = defaultClarity
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rps := config.RequestsPerSecond
	if rps == 0 {
		rps = defaultRPS
	}

	return &ElevenLabsTTS{
		apiKey:     config.APIKey,
		apiBaseURL: apiBaseURL,
		voiceID:    voiceID,
		modelID:    modelID,
		stability:  stability,
		clarity:    clarity,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}, nil
}

// Synthesize converts text to speech and returns the audio artifact.
func (e *ElevenLabsTTS) Synthesize(ctx context.Context, text string) (domain.Audio, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Audio{}, fmt.Errorf("text cannot be empty")
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return domain.Audio{}, fmt.Errorf("synthesis rate limit wait cancelled: %w", err)
	}

	requestBody, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: e.modelID,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       e.stability,
			SimilarityBoost: e.clarity,
		},
	})
	if err != nil {
		return domain.Audio{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", e.apiBaseURL, e.voiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return domain.Audio{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Accept", "audio/mpeg")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return domain.Audio{}, fmt.Errorf("failed to execute synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.Audio{}, fmt.Errorf("synthesis API returned %d: %s", resp.StatusCode, string(errorBody))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Audio{}, fmt.Errorf("failed to read synthesized audio: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	e.logger.Info("Synthesized speech",
		zap.String("voiceID", e.voiceID),
		zap.Int("textLength", len(text)),
		zap.Int("audioBytes", len(data)))

	return domain.Audio{Data: data, ContentType: contentType}, nil
}
