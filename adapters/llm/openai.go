package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/suaralabs/suara/domain/repositories"
)

const (
	defaultOpenAIModel  = openai.GPT4oMini
	defaultMaxTokens    = 256
	defaultTemperature  = 0.7
	defaultLLMTimeout   = 30 * time.Second
	defaultSystemPrompt = "You are a friendly voice assistant. Answer briefly, in one or two spoken sentences."

	// maxToolRounds caps how many times the model may call tools for a
	// single prompt before the request is abandoned.
	maxToolRounds = 3
)

// OpenAIConfig holds configuration for the OpenAILLM adapter
// Required fields:
// - APIKey: Your OpenAI API key
// Optional fields with defaults:
// - BaseURL: alternate API endpoint (default: the public OpenAI API)
// - Model: chat model id (default: "gpt-4o-mini")
// - MaxTokens: completion token cap (default: 256)
// - Temperature: sampling temperature (default: 0.7)
// - Timeout: per-request deadline (default: 30s)
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// OpenAILLM implements the LanguageModel interface using the OpenAI chat
// completions API. When a tool dispatcher is attached, the model may call
// its tools mid-completion and the adapter feeds the results back until
// the model produces text.
type OpenAILLM struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	tools       repositories.ToolDispatcher
	logger      *zap.Logger
}

// Ensure OpenAILLM implements the LanguageModel interface
var _ repositories.LanguageModel = (*OpenAILLM)(nil)

// NewOpenAILLM creates a new OpenAI completion client. tools may be nil,
// in which case completions are plain single-turn requests.
func NewOpenAILLM(config OpenAIConfig, tools repositories.ToolDispatcher, logger *zap.Logger) (*OpenAILLM, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := config.Model
	if model == "" {
		model = defaultOpenAIModel
		logger.Info("Using default OpenAI model", zap.String("model", model))
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
		logger.Info("Using custom OpenAI base URL", zap.String("baseURL", config.BaseURL))
	}

	return &OpenAILLM{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		tools:       tools,
		logger:      logger,
	}, nil
}

// Complete sends the prompt as a chat completion and returns the generated
// text. Tool calls the model makes along the way are dispatched and their
// results fed back; everything else is one attempt per request, and the
// caller decides how a failure surfaces.
func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: defaultSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	var tools []openai.Tool
	if o.tools != nil {
		tools = convertTools(o.tools.Tools())
	}

	for round := 0; ; round++ {
		response, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       o.model,
			MaxTokens:   o.maxTokens,
			Temperature: o.temperature,
			Messages:    messages,
			Tools:       tools,
		})
		if err != nil {
			return "", fmt.Errorf("completion request failed: %w", err)
		}

		if len(response.Choices) == 0 {
			return "", fmt.Errorf("completion returned no choices")
		}

		message := response.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			text := strings.TrimSpace(message.Content)
			if text == "" {
				return "", fmt.Errorf("completion returned empty text")
			}

			o.logger.Info("Completion generated",
				zap.String("model", o.model),
				zap.Int("promptLength", len(prompt)),
				zap.Int("completionLength", len(text)),
				zap.Int("toolRounds", round))

			return text, nil
		}

		if o.tools == nil {
			return "", fmt.Errorf("completion requested a tool call but no tools are attached")
		}
		if round >= maxToolRounds {
			return "", fmt.Errorf("completion exceeded %d tool rounds", maxToolRounds)
		}

		messages = append(messages, message)
		messages = append(messages, o.dispatchToolCalls(ctx, message.ToolCalls)...)
	}
}

// dispatchToolCalls runs each requested tool and wraps the results as tool
// messages. A failed tool is reported back to the model as an error payload
// so it can answer anyway, rather than failing the whole completion.
func (o *OpenAILLM) dispatchToolCalls(ctx context.Context, calls []openai.ToolCall) []openai.ChatCompletionMessage {
	results := make([]openai.ChatCompletionMessage, 0, len(calls))
	for _, call := range calls {
		result, err := o.tools.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
		if err != nil {
			o.logger.Warn("Tool call failed",
				zap.String("tool", call.Function.Name),
				zap.Error(err))
			result = fmt.Sprintf(`{"error": %q}`, err.Error())
		}

		results = append(results, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    result,
			ToolCallID: call.ID,
		})
	}
	return results
}

// convertTools maps the dispatcher's definitions onto the OpenAI wire shape.
func convertTools(definitions []repositories.Tool) []openai.Tool {
	tools := make([]openai.Tool, 0, len(definitions))
	for _, definition := range definitions {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        definition.Name,
				Description: definition.Description,
				Parameters:  definition.Parameters,
			},
		})
	}
	return tools
}
