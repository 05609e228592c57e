package repositories

import (
	"context"
	"encoding/json"
)

// Tool describes one callable assistant function: the wire name the model
// selects it by, a short description, and a JSON Schema for the arguments
// object.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// ToolDispatcher exposes a set of tools a language model may call while
// producing a completion, and executes them by name. Dispatch receives the
// model's JSON-encoded arguments and returns a JSON-encoded result to feed
// back into the conversation.
type ToolDispatcher interface {
	Tools() []Tool
	Dispatch(ctx context.Context, name string, arguments string) (string, error)
}
