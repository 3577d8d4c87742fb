package openaicompat

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mwalther/chatshim/pkg/api"
)

// TranslateResponse converts a backend response into the canonical
// response. Only choices[0] is consumed; an empty choice list behaves
// like an all-default choice (no text, no tool calls, end_turn).
func TranslateResponse(resp *ChatCompletionResponse) *api.Response {
	out := &api.Response{
		Model:  resp.Model,
		Blocks: []api.ContentBlock{},
	}
	if resp.Usage != nil {
		out.Usage = api.Usage{
			InputTokens:  api.IntFromAny(resp.Usage.PromptTokens),
			OutputTokens: api.IntFromAny(resp.Usage.CompletionTokens),
		}
	}

	var choice ChatChoice
	if len(resp.Choices) > 0 {
		choice = resp.Choices[0]
	}

	if text, ok := choice.Message.Content.(string); ok && text != "" {
		out.Blocks = append(out.Blocks, api.ContentBlock{Type: api.BlockTypeText, Text: text})
	}
	for _, tc := range choice.Message.ToolCalls {
		out.Blocks = append(out.Blocks, api.ContentBlock{
			Type:  api.BlockTypeToolUse,
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: ParseToolArguments(tc.Function.Arguments),
		})
	}

	out.StopReason = MapFinishReason(choice.FinishReason)
	return out
}

// MapFinishReason maps a Chat Completions finish_reason onto the
// canonical stop reason. The mapping is total and case-insensitive;
// anything unrecognized (including absent) means end_turn.
func MapFinishReason(reason string) api.StopReason {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case "tool_calls", "function_call":
		return api.StopReasonToolUse
	case "length":
		return api.StopReasonMaxTokens
	default:
		return api.StopReasonEndTurn
	}
}

// ParseToolArguments decodes a tool call's arguments into an object.
// The result is always a JSON object: a malformed or non-object
// arguments string is wrapped as {"_raw": original} instead of failing
// the response, and anything else defaults to {}.
func ParseToolArguments(raw json.RawMessage) map[string]any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}
	}

	// The conforming shape: a JSON string holding encoded arguments.
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return map[string]any{}
		}
		if strings.TrimSpace(s) == "" {
			return map[string]any{}
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
			return map[string]any{"_raw": s}
		}
		return obj
	}

	// Some backends inline the arguments object directly.
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err == nil && obj != nil {
		return obj
	}
	return map[string]any{}
}
