package config

import (
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheDir != "audio" {
		t.Errorf("Expected default cache dir audio, got %s", cfg.CacheDir)
	}
	if cfg.CacheTTL != 10*time.Second {
		t.Errorf("Expected default cache TTL 10s, got %s", cfg.CacheTTL)
	}
	if cfg.CacheSweepInterval != cfg.CacheTTL {
		t.Errorf("Expected the sweep interval to default to the TTL, got %s", cfg.CacheSweepInterval)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("Expected default provider openai, got %s", cfg.LLMProvider)
	}
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_DIR", "/tmp/artifacts")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("ELEVENLABS_KEY", "xi-key")
	t.Setenv("ELEVENLABS_VOICE_ID", "custom-voice")
	t.Setenv("BASE_URL", "https://planning.example.com")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("Expected TTL 2m, got %s", cfg.CacheTTL)
	}
	if cfg.CacheDir != "/tmp/artifacts" {
		t.Errorf("Expected overridden cache dir, got %s", cfg.CacheDir)
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("Expected provider gemini, got %s", cfg.LLMProvider)
	}
	if cfg.ElevenLabs.APIKey != "xi-key" {
		t.Errorf("Expected ElevenLabs key to be read, got %q", cfg.ElevenLabs.APIKey)
	}
	if cfg.ElevenLabs.VoiceID != "custom-voice" {
		t.Errorf("Expected voice ID to be read, got %q", cfg.ElevenLabs.VoiceID)
	}
	if cfg.Planningboard.BaseURL != "https://planning.example.com" {
		t.Errorf("Expected planningboard base URL to be read, got %q", cfg.Planningboard.BaseURL)
	}
}
