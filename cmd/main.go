package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/suaralabs/suara/adapters/cache"
	"github.com/suaralabs/suara/adapters/directory"
	"github.com/suaralabs/suara/adapters/llm"
	"github.com/suaralabs/suara/adapters/tts"
	"github.com/suaralabs/suara/domain/repositories"
	"github.com/suaralabs/suara/internal/api"
	"github.com/suaralabs/suara/internal/config"
	"github.com/suaralabs/suara/internal/websocket"
	"github.com/suaralabs/suara/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Audio cache with background expiry sweep
	audioCache, err := cache.NewDiskCache(cache.DiskCacheConfig{
		Dir:        cfg.CacheDir,
		TTL:        cfg.CacheTTL,
		SweepEvery: cfg.CacheSweepInterval,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize audio cache", zap.Error(err))
	}
	defer audioCache.Close()

	// Availability first: when planningboard is configured its lookups
	// double as assistant tools for the language model.
	availabilityService := newAvailabilityService(cfg, logger)
	var tools repositories.ToolDispatcher
	if availabilityService != nil {
		tools = usecase.NewAssistantToolbox(availabilityService, logger)
	}

	// Upstream adapters
	languageModel := newLanguageModel(cfg, tools, logger)
	synthesizer := newSynthesizer(cfg, logger)

	// Usecase services
	chatService := usecase.NewChatService(languageModel, synthesizer, audioCache, logger)

	// Routes
	api.InitRoutes(e, chatService, availabilityService, audioCache.Dir(), logger)
	wsHandler := websocket.NewHandler(chatService, logger)
	e.GET("/ws", wsHandler.Serve)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("cacheDir", cfg.CacheDir),
		zap.Duration("cacheTTL", cfg.CacheTTL))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newLanguageModel picks the configured completion provider, falling back
// to the mock when no credentials are present so the server still starts
// in development. Only the OpenAI provider supports assistant tools.
func newLanguageModel(cfg *config.Config, tools repositories.ToolDispatcher, logger *zap.Logger) repositories.LanguageModel {
	switch cfg.LLMProvider {
	case "gemini":
		model, err := llm.NewGeminiLLM(llm.GeminiConfig{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.UpstreamTimeout,
		}, logger)
		if err == nil {
			return model
		}
		logger.Warn("Gemini not configured, using mock language model", zap.Error(err))
	default:
		model, err := llm.NewOpenAILLM(llm.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.UpstreamTimeout,
		}, tools, logger)
		if err == nil {
			return model
		}
		logger.Warn("OpenAI not configured, using mock language model", zap.Error(err))
	}
	return llm.NewMockLLM()
}

func newSynthesizer(cfg *config.Config, logger *zap.Logger) repositories.SpeechSynthesizer {
	synthesizer, err := tts.NewElevenLabsTTS(tts.ElevenLabsConfig{
		APIKey:            cfg.ElevenLabs.APIKey,
		APIBaseURL:        cfg.ElevenLabs.APIBaseURL,
		VoiceID:           cfg.ElevenLabs.VoiceID,
		ModelID:           cfg.ElevenLabs.ModelID,
		RequestsPerSecond: cfg.ElevenLabs.RequestsPerSecond,
		Timeout:           cfg.UpstreamTimeout,
	}, logger)
	if err != nil {
		logger.Warn("Text-to-speech not configured, using mock synthesizer", zap.Error(err))
		return tts.NewMockTTS()
	}
	return synthesizer
}

func newAvailabilityService(cfg *config.Config, logger *zap.Logger) *usecase.AvailabilityService {
	if cfg.Planningboard.BaseURL == "" {
		logger.Info("Planningboard not configured, availability endpoint disabled")
		return nil
	}

	client, err := directory.NewClient(directory.Config{
		BaseURL: cfg.Planningboard.BaseURL,
		Cookie:  cfg.Planningboard.Cookie,
		Referer: cfg.Planningboard.Referer,
		Origin:  cfg.Planningboard.Origin,
		Timeout: cfg.UpstreamTimeout,
	}, logger)
	if err != nil {
		logger.Warn("Failed to initialize planningboard client", zap.Error(err))
		return nil
	}

	return usecase.NewAvailabilityService(client, logger)
}
