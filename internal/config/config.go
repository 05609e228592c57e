package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config enumerates every process-wide setting. It is loaded once at
// startup and passed by reference; nothing else reads the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Audio cache
	CacheDir           string        `env:"CACHE_DIR" envDefault:"audio"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"10s"`
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL"`

	// Upstreams
	LLMProvider     string        `env:"LLM_PROVIDER" envDefault:"openai"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	OpenAI        OpenAIConfig
	Gemini        GeminiConfig
	ElevenLabs    ElevenLabsConfig
	Planningboard PlanningboardConfig
}

// OpenAIConfig configures the OpenAI completion provider.
type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"OPENAI_MODEL"`
}

// GeminiConfig configures the Gemini completion provider.
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL"`
}

// ElevenLabsConfig configures speech synthesis.
type ElevenLabsConfig struct {
	APIKey            string  `env:"ELEVENLABS_KEY"`
	APIBaseURL        string  `env:"ELEVENLABS_API_BASE_URL"`
	VoiceID           string  `env:"ELEVENLABS_VOICE_ID"`
	ModelID           string  `env:"ELEVENLABS_MODEL_ID"`
	RequestsPerSecond float64 `env:"ELEVENLABS_RPS"`
}

// PlanningboardConfig configures the employee directory upstream. The
// availability endpoint stays disabled when BaseURL is empty.
type PlanningboardConfig struct {
	BaseURL string `env:"BASE_URL"`
	Cookie  string `env:"COOKIE"`
	Referer string `env:"REFERER"`
	Origin  string `env:"ORIGIN"`
}

// New loads .env when present, then the environment over the defaults.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.CacheSweepInterval <= 0 {
		cfg.CacheSweepInterval = cfg.CacheTTL
	}

	return cfg, nil
}
