package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap/zaptest"

	"github.com/suaralabs/suara/domain/repositories"
)

// stubDispatcher records tool calls and answers with a canned result.
type stubDispatcher struct {
	definitions []repositories.Tool
	result      string
	err         error
	names       []string
	arguments   []string
}

func (d *stubDispatcher) Tools() []repositories.Tool {
	return d.definitions
}

func (d *stubDispatcher) Dispatch(ctx context.Context, name string, arguments string) (string, error) {
	d.names = append(d.names, name)
	d.arguments = append(d.arguments, arguments)
	if d.err != nil {
		return "", d.err
	}
	return d.result, nil
}

func availabilityToolDefinition() repositories.Tool {
	return repositories.Tool{
		Name:        "check_availability",
		Description: "Get availability for a specific practice and time interval",
		Parameters:  json.RawMessage(`{"type":"object","properties":{"practice":{"type":"string"}}}`),
	}
}

func textResponse(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: text,
			}},
		},
	}
}

func toolCallResponse(id, name, arguments string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleAssistant,
				ToolCalls: []openai.ToolCall{
					{
						ID:   id,
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      name,
							Arguments: arguments,
						},
					},
				},
			}},
		},
	}
}

func TestNewOpenAILLM_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAILLM(OpenAIConfig{}, nil, zaptest.NewLogger(t)); err == nil {
		t.Error("Expected error when API key is not set")
	}
}

func TestOpenAILLM_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Tools) != 0 {
			t.Errorf("Expected no tools without a dispatcher, got %d", len(req.Tools))
		}
		if len(req.Messages) != 2 || req.Messages[1].Content != "hello" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(textResponse("hi there"))
	}))
	defer server.Close()

	model, err := NewOpenAILLM(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL}, nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create OpenAILLM: %v", err)
	}

	text, err := model.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "hi there" {
		t.Errorf("Expected %q, got %q", "hi there", text)
	}
}

func TestOpenAILLM_Complete_DispatchesToolCalls(t *testing.T) {
	dispatcher := &stubDispatcher{
		definitions: []repositories.Tool{availabilityToolDefinition()},
		result:      `[{"name":"Ana Silva","amount_free":10,"amount_occupied":30}]`,
	}

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		switch requests {
		case 1:
			if len(req.Tools) != 1 || req.Tools[0].Function.Name != "check_availability" {
				t.Errorf("Expected the availability tool to be advertised, got %+v", req.Tools)
			}
			json.NewEncoder(w).Encode(toolCallResponse(
				"call_1", "check_availability",
				`{"practice":"creative","from_date":"2024-01-01","to_date":"2024-01-31"}`))
		default:
			last := req.Messages[len(req.Messages)-1]
			if last.Role != openai.ChatMessageRoleTool {
				t.Errorf("Expected a tool message, got role %q", last.Role)
			}
			if last.ToolCallID != "call_1" {
				t.Errorf("Expected tool call id %q, got %q", "call_1", last.ToolCallID)
			}
			if last.Content != dispatcher.result {
				t.Errorf("Expected the tool result to be fed back, got %q", last.Content)
			}
			json.NewEncoder(w).Encode(textResponse("Ana Silva has 10 hours free."))
		}
	}))
	defer server.Close()

	model, err := NewOpenAILLM(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL}, dispatcher, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create OpenAILLM: %v", err)
	}

	text, err := model.Complete(context.Background(), "who is free in creative this month?")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "Ana Silva has 10 hours free." {
		t.Errorf("Unexpected completion: %q", text)
	}
	if requests != 2 {
		t.Errorf("Expected 2 requests, got %d", requests)
	}
	if len(dispatcher.names) != 1 || dispatcher.names[0] != "check_availability" {
		t.Errorf("Expected one check_availability dispatch, got %v", dispatcher.names)
	}
	if !strings.Contains(dispatcher.arguments[0], `"practice":"creative"`) {
		t.Errorf("Expected the model's arguments to reach the dispatcher, got %q", dispatcher.arguments[0])
	}
}

func TestOpenAILLM_Complete_ToolFailureFedBack(t *testing.T) {
	dispatcher := &stubDispatcher{
		definitions: []repositories.Tool{availabilityToolDefinition()},
		err:         context.DeadlineExceeded,
	}

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		if requests == 1 {
			json.NewEncoder(w).Encode(toolCallResponse("call_1", "check_availability", `{"practice":"strategy"}`))
			return
		}

		last := req.Messages[len(req.Messages)-1]
		if !strings.Contains(last.Content, "error") {
			t.Errorf("Expected an error payload in the tool message, got %q", last.Content)
		}
		json.NewEncoder(w).Encode(textResponse("I could not reach the planning board, sorry."))
	}))
	defer server.Close()

	model, err := NewOpenAILLM(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL}, dispatcher, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create OpenAILLM: %v", err)
	}

	text, err := model.Complete(context.Background(), "who is free in strategy?")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !strings.Contains(text, "could not reach") {
		t.Errorf("Unexpected completion: %q", text)
	}
}

func TestOpenAILLM_Complete_ToolRoundsBounded(t *testing.T) {
	dispatcher := &stubDispatcher{
		definitions: []repositories.Tool{availabilityToolDefinition()},
		result:      `[]`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(toolCallResponse("call_1", "check_availability", `{"practice":"creative"}`))
	}))
	defer server.Close()

	model, err := NewOpenAILLM(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL}, dispatcher, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create OpenAILLM: %v", err)
	}

	if _, err := model.Complete(context.Background(), "loop forever"); err == nil {
		t.Error("Expected an error when the model never stops calling tools")
	}
}
