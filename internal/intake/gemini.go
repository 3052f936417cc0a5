// Copyright (c) 2026 Warehouse 21. All rights reserved.

package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel implements [Model] against the Google Gemini API.
type GeminiModel struct {
	client    *genai.Client
	modelName string
	logger    *slog.Logger
}

/*
NewGeminiModel constructs the production model adapter.

Parameters:
  - context: context.Context
  - apiKey: string
  - modelName: string (e.g. "gemini-1.5-flash")
  - logger: *slog.Logger

Returns:
  - *GeminiModel: Ready adapter
  - error: Client construction failures
*/
func NewGeminiModel(context context.Context, apiKey, modelName string, logger *slog.Logger) (*GeminiModel, error) {
	client, err := genai.NewClient(context, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiModel{client: client, modelName: modelName, logger: logger}, nil
}

// Close releases the underlying client connection.
func (model *GeminiModel) Close() error {
	return model.client.Close()
}

/*
Dispatch sends one user message with the persona and tool declarations.

Description: Starts a fresh single-turn chat per request. Only the first
function-call part of the response is honored; additional tool requests are
logged and ignored.

Parameters:
  - context: context.Context
  - message: string

Returns:
  - Outcome: Parsed model decision
  - error: Transport, service, or malformed-response failures
*/
func (model *GeminiModel) Dispatch(context context.Context, message string) (Outcome, error) {
	generative := model.client.GenerativeModel(model.modelName)
	generative.Tools = intakeTools()
	generative.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	chat := generative.StartChat()
	response, err := chat.SendMessage(context, genai.Text(message))
	if err != nil {
		return nil, fmt.Errorf("sending intake message: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty model response")
	}

	parts := response.Candidates[0].Content.Parts

	// First function call wins; extras are surfaced in logs only.
	var call *genai.FunctionCall
	extras := 0
	for i := range parts {
		if functionCall, ok := parts[i].(genai.FunctionCall); ok {
			if call == nil {
				copied := functionCall
				call = &copied
			} else {
				extras++
			}
		}
	}
	if extras > 0 {
		model.logger.Warn("model requested additional tool calls, ignoring extras",
			"honored", call.Name, "ignored", extras)
	}

	if call == nil {
		return PlainReply{Text: fmt.Sprintf("%v", parts[0])}, nil
	}

	switch call.Name {
	case toolAddItem:
		return parseAddItem(call.Args)
	case toolGetInventory:
		return GetInventoryCall{}, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", call.Name)
	}
}

/*
Summarize issues the second, tool-free call of the inventory-query path.

Parameters:
  - context: context.Context
  - message: string
  - inventory: string

Returns:
  - string: Suggestion text
  - error: Transport or empty-response failures
*/
func (model *GeminiModel) Summarize(context context.Context, message, inventory string) (string, error) {
	generative := model.client.GenerativeModel(model.modelName)
	generative.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	prompt := fmt.Sprintf("User asked: %s. Inventory: %s. Suggest a recipe.", message, inventory)
	response, err := generative.GenerateContent(context, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating suggestion: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty suggestion response")
	}
	return fmt.Sprintf("%v", response.Candidates[0].Content.Parts[0]), nil
}

// parseAddItem coerces raw tool arguments into an [AddItemCall]. The model
// is not trusted to emit exact types; quantity in particular arrives as a
// float, an integer, or a numeric string depending on the service mood.
func parseAddItem(args map[string]any) (Outcome, error) {
	name, ok := args[argName].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("add_item missing name argument")
	}

	quantity, err := coerceInt(args[argQuantity])
	if err != nil {
		return nil, fmt.Errorf("add_item quantity: %w", err)
	}

	categorySlug, _ := args[argCategorySlug].(string)
	iconType, _ := args[argIconType].(string)

	return AddItemCall{
		Name:         name,
		Quantity:     quantity,
		CategorySlug: categorySlug,
		IconType:     iconType,
	}, nil
}

// coerceInt accepts the numeric representations the service actually emits.
func coerceInt(value any) (int, error) {
	switch typed := value.(type) {
	case int:
		return typed, nil
	case int64:
		return int(typed), nil
	case float64:
		return int(typed), nil
	case float32:
		return int(typed), nil
	case string:
		parsed, err := strconv.Atoi(typed)
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", typed)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}
