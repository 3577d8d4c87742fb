package openaicompat

import (
	"encoding/json"
	"testing"

	"github.com/mwalther/chatshim/pkg/api"
)

func TestTranslateResponse_Text(t *testing.T) {
	resp := TranslateResponse(&ChatCompletionResponse{
		Model: "gpt-4o-mini",
		Choices: []ChatChoice{{
			Message:      ChatChoiceMessage{Role: "assistant", Content: "Hello!"},
			FinishReason: "stop",
		}},
		Usage: &ChatUsage{PromptTokens: 10.0, CompletionTokens: 5.0},
	})

	if resp.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", resp.Model)
	}
	if len(resp.Blocks) != 1 || resp.Blocks[0].Type != api.BlockTypeText || resp.Blocks[0].Text != "Hello!" {
		t.Errorf("blocks = %+v, want one text block", resp.Blocks)
	}
	if resp.StopReason != api.StopReasonEndTurn {
		t.Errorf("stop reason = %q, want end_turn", resp.StopReason)
	}
	if resp.Usage.InputTokens != 10 || resp.Usage.OutputTokens != 5 {
		t.Errorf("usage = %+v, want 10/5", resp.Usage)
	}
}

func TestTranslateResponse_ToolCalls(t *testing.T) {
	resp := TranslateResponse(&ChatCompletionResponse{
		Choices: []ChatChoice{{
			Message: ChatChoiceMessage{
				Role: "assistant",
				ToolCalls: []ChatResponseToolCall{{
					ID:   "call_1",
					Type: "function",
					Function: ChatResponseFunctionCall{
						Name:      "get_weather",
						Arguments: json.RawMessage(`"{\"city\":\"Paris\"}"`),
					},
				}},
			},
			FinishReason: "tool_calls",
		}},
	})

	if len(resp.Blocks) != 1 {
		t.Fatalf("len(blocks) = %d, want 1", len(resp.Blocks))
	}
	b := resp.Blocks[0]
	if b.Type != api.BlockTypeToolUse || b.ID != "call_1" || b.Name != "get_weather" {
		t.Errorf("block = %+v, want tool_use call_1/get_weather", b)
	}
	if b.Input["city"] != "Paris" {
		t.Errorf("input = %v, want parsed arguments", b.Input)
	}
	if resp.StopReason != api.StopReasonToolUse {
		t.Errorf("stop reason = %q, want tool_use", resp.StopReason)
	}
}

func TestTranslateResponse_TextBeforeToolCalls(t *testing.T) {
	resp := TranslateResponse(&ChatCompletionResponse{
		Choices: []ChatChoice{{
			Message: ChatChoiceMessage{
				Content: "Checking now.",
				ToolCalls: []ChatResponseToolCall{{
					ID:       "call_1",
					Function: ChatResponseFunctionCall{Name: "f", Arguments: json.RawMessage(`"{}"`)},
				}},
			},
			FinishReason: "tool_calls",
		}},
	})

	if len(resp.Blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want text then tool_use", len(resp.Blocks))
	}
	if resp.Blocks[0].Type != api.BlockTypeText || resp.Blocks[1].Type != api.BlockTypeToolUse {
		t.Errorf("block order = %q,%q, want text,tool_use", resp.Blocks[0].Type, resp.Blocks[1].Type)
	}
}

func TestTranslateResponse_NoChoices(t *testing.T) {
	resp := TranslateResponse(&ChatCompletionResponse{})
	if resp.Blocks == nil || len(resp.Blocks) != 0 {
		t.Errorf("blocks = %v, want non-nil empty slice", resp.Blocks)
	}
	if resp.StopReason != api.StopReasonEndTurn {
		t.Errorf("stop reason = %q, want end_turn", resp.StopReason)
	}
}

func TestTranslateResponse_NullContent(t *testing.T) {
	resp := TranslateResponse(&ChatCompletionResponse{
		Choices: []ChatChoice{{
			Message:      ChatChoiceMessage{Content: nil},
			FinishReason: "stop",
		}},
	})
	if len(resp.Blocks) != 0 {
		t.Errorf("blocks = %v, want none for null content", resp.Blocks)
	}
}

func TestMapFinishReason(t *testing.T) {
	tests := []struct {
		input string
		want  api.StopReason
	}{
		{"stop", api.StopReasonEndTurn},
		{"tool_calls", api.StopReasonToolUse},
		{"TOOL_CALLS", api.StopReasonToolUse},
		{"function_call", api.StopReasonToolUse},
		{"length", api.StopReasonMaxTokens},
		{" Length ", api.StopReasonMaxTokens},
		{"", api.StopReasonEndTurn},
		{"content_filter", api.StopReasonEndTurn},
		{"banana", api.StopReasonEndTurn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MapFinishReason(tt.input); got != tt.want {
				t.Errorf("MapFinishReason(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseToolArguments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"encoded object", `"{\"a\":1}"`, `{"a":1}`},
		{"empty string", `""`, `{}`},
		{"whitespace string", `"   "`, `{}`},
		{"malformed string", `"not json"`, `{"_raw":"not json"}`},
		{"non-object json string", `"42"`, `{"_raw":"42"}`},
		{"encoded null", `"null"`, `{"_raw":"null"}`},
		{"inline object", `{"b":2}`, `{"b":2}`},
		{"json null", `null`, `{}`},
		{"absent", ``, `{}`},
		{"inline array", `[1,2]`, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseToolArguments(json.RawMessage(tt.raw))
			data, err := json.Marshal(got)
			if err != nil {
				t.Fatalf("marshal result: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("ParseToolArguments(%s) = %s, want %s", tt.raw, data, tt.want)
			}
		})
	}
}

// Arguments survive a request->response round trip unchanged.
func TestToolArgumentRoundTrip(t *testing.T) {
	input := map[string]any{"city": "Paris", "days": 3.0}

	encoded := encodeArguments(input)
	raw, _ := json.Marshal(encoded)
	decoded := ParseToolArguments(raw)

	if api.Stringify(decoded) != api.Stringify(input) {
		t.Errorf("round trip = %v, want %v", decoded, input)
	}
}
