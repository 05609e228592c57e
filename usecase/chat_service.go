package usecase

import (
	"context"
	"encoding/base64"
	"strings"

	"go.uber.org/zap"

	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/domain/repositories"
)

// audioRoute is the HTTP prefix the API layer serves cached artifacts under.
const audioRoute = "/audio/"

// ChatService runs the prompt-to-speech pipeline: completion, cache
// lookup, synthesis on a miss, artifact reference assembly. Nothing
// outside the cache persists between requests.
type ChatService struct {
	llm    repositories.LanguageModel
	tts    repositories.SpeechSynthesizer
	cache  repositories.AudioCache
	logger *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	llm repositories.LanguageModel,
	tts repositories.SpeechSynthesizer,
	cache repositories.AudioCache,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		llm:    llm,
		tts:    tts,
		cache:  cache,
		logger: logger,
	}
}

// Handle produces the response for one prompt. A blank prompt fails with
// domain.ErrEmptyPrompt before any upstream call; completion and synthesis
// failures abort the request as an UpstreamError; cache failures are
// absorbed and never surface to the caller.
func (s *ChatService) Handle(ctx context.Context, prompt string) (domain.ChatResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return domain.ChatResponse{}, domain.ErrEmptyPrompt
	}

	text, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return domain.ChatResponse{}, &domain.UpstreamError{Service: "completion", Err: err}
	}

	key := s.cache.Key(text)

	if _, hit := s.cache.Get(key); hit {
		s.logger.Info("Serving cached audio", zap.String("key", key))
		return domain.ChatResponse{Text: text, AudioRef: audioRoute + s.cache.Path(key)}, nil
	}

	audio, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		return domain.ChatResponse{}, &domain.UpstreamError{Service: "synthesis", Err: err}
	}

	if err := s.cache.Put(key, audio); err != nil {
		// A failed write must not fail the request; fall back to an
		// inline reference so the caller still gets playable audio.
		s.logger.Warn("Failed to cache audio artifact",
			zap.String("key", key),
			zap.Error(err))
		return domain.ChatResponse{Text: text, AudioRef: dataURI(audio)}, nil
	}

	return domain.ChatResponse{Text: text, AudioRef: audioRoute + s.cache.Path(key)}, nil
}

// dataURI encodes an artifact inline for the case where it could not be
// written to the directory the audio route serves from.
func dataURI(audio domain.Audio) string {
	return "data:" + audio.ContentType + ";base64," + base64.StdEncoding.EncodeToString(audio.Data)
}
