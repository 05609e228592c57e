package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/suaralabs/suara/domain/repositories"
)

const (
	toolCheckAvailability         = "check_availability"
	toolCheckEmployeeAvailability = "check_employee_availability"
)

// practices lists the tags planningboard groups employees under; the enum
// keeps the model from inventing practice names.
var practices = []string{
	"Technology", "Experience", "strategy",
	"project management", "creative", "copywriter",
}

// AssistantToolbox wires availability lookups into the language model's
// function-calling surface: the model picks a tool, the toolbox runs the
// planningboard lookup and hands the result back as JSON.
type AssistantToolbox struct {
	availability *AvailabilityService
	logger       *zap.Logger
}

// Ensure AssistantToolbox implements the ToolDispatcher interface
var _ repositories.ToolDispatcher = (*AssistantToolbox)(nil)

// NewAssistantToolbox creates a new assistant toolbox
func NewAssistantToolbox(availability *AvailabilityService, logger *zap.Logger) *AssistantToolbox {
	return &AssistantToolbox{
		availability: availability,
		logger:       logger,
	}
}

// Tools returns the availability tool definitions.
func (b *AssistantToolbox) Tools() []repositories.Tool {
	return []repositories.Tool{
		{
			Name:        toolCheckAvailability,
			Description: "Get availability for a specific practice and time interval",
			Parameters: argumentsSchema(map[string]any{
				"practice": map[string]any{
					"type":        "string",
					"enum":        practices,
					"description": "The practice name",
				},
				"from_date": dateProperty("The start date in 'YYYY-MM-DD' format"),
				"to_date":   dateProperty("The end date in 'YYYY-MM-DD' format"),
			}, "practice", "from_date", "to_date"),
		},
		{
			Name:        toolCheckEmployeeAvailability,
			Description: "Get a specific employee availability for a specific time interval",
			Parameters: argumentsSchema(map[string]any{
				"employee_name": map[string]any{
					"type":        "string",
					"description": "The employee name and surname",
				},
				"from_date": dateProperty("The start date in 'YYYY-MM-DD' format"),
				"to_date":   dateProperty("The end date in 'YYYY-MM-DD' format"),
			}, "employee_name", "from_date", "to_date"),
		},
	}
}

// toolArguments covers both tools; the model only fills the fields the
// selected tool's schema requires.
type toolArguments struct {
	Practice     string `json:"practice"`
	EmployeeName string `json:"employee_name"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
}

// Dispatch executes the named tool and returns its JSON-encoded result.
func (b *AssistantToolbox) Dispatch(ctx context.Context, name string, arguments string) (string, error) {
	var args toolArguments
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
	}

	b.logger.Info("Dispatching assistant tool", zap.String("tool", name))

	switch name {
	case toolCheckAvailability:
		allocations, err := b.availability.Check(ctx, args.Practice, args.FromDate, args.ToDate)
		if err != nil {
			return "", err
		}
		return encodeToolResult(allocations)
	case toolCheckEmployeeAvailability:
		allocation, err := b.availability.CheckEmployee(ctx, args.EmployeeName, args.FromDate, args.ToDate)
		if err != nil {
			return "", err
		}
		return encodeToolResult(allocation)
	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

// argumentsSchema builds the JSON Schema object for a tool's arguments.
// The property maps only hold strings and string slices, so marshaling
// cannot fail.
func argumentsSchema(properties map[string]any, required ...string) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	})
	return raw
}

func dateProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"format":      "date",
		"description": description,
	}
}

func encodeToolResult(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return string(raw), nil
}
