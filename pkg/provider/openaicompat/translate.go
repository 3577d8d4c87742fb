package openaicompat

import (
	"encoding/json"
	"strings"

	"github.com/mwalther/chatshim/pkg/api"
	"github.com/mwalther/chatshim/pkg/debug"
)

// BuildChatRequest assembles the full backend request from a canonical
// request and the already-resolved model name and token limit.
func BuildChatRequest(req *api.Request, model string, maxTokens int) ChatCompletionRequest {
	cr := ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Messages:    TranslateMessages(req.System, req.Messages),
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stop:        req.StopSequences,
	}
	if tools := TranslateTools(req.Tools); len(tools) > 0 {
		cr.Tools = tools
	}
	if tc := translateToolChoice(req.ToolChoice); tc != nil {
		cr.ToolChoice = tc
	}
	return cr
}

// TranslateMessages flattens the canonical system prompt and message
// list into Chat Completions messages. The result is never empty:
// backends reject conversations with no messages.
func TranslateMessages(system any, messages []api.Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(messages)+1)
	if s := api.Stringify(system); strings.TrimSpace(s) != "" {
		out = append(out, ChatMessage{Role: "system", Content: s})
	}
	for _, m := range messages {
		role := strings.TrimSpace(m.Role)
		if role == "" {
			role = "user"
		}
		out = append(out, translateMessage(role, m.Content)...)
	}
	if len(out) == 0 {
		out = append(out, ChatMessage{Role: "user", Content: ""})
	}
	debug.Log("translate", "translated conversation", "in", len(messages), "out", len(out))
	return out
}

func translateMessage(role string, content api.MessageContent) []ChatMessage {
	switch content.Kind {
	case api.ContentKindText:
		return []ChatMessage{{Role: role, Content: content.Text}}
	case api.ContentKindBlocks:
		switch role {
		case "assistant":
			return []ChatMessage{assistantFromBlocks(content.Blocks)}
		case "user":
			return userFromBlocks(content.Blocks)
		default:
			return []ChatMessage{{Role: role, Content: api.Stringify(content.Blocks)}}
		}
	default:
		return []ChatMessage{{Role: role, Content: api.Stringify(content.Raw)}}
	}
}

// assistantFromBlocks folds an assistant block sequence into exactly one
// backend message: text blocks join with newlines, tool_use blocks become
// tool calls, tool_result blocks have no assistant-side encoding and are
// dropped.
func assistantFromBlocks(blocks []api.ContentBlock) ChatMessage {
	var parts []string
	var calls []ChatToolCall
	for _, b := range blocks {
		switch b.Type {
		case api.BlockTypeText:
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		case api.BlockTypeToolUse:
			calls = append(calls, ChatToolCall{
				ID:   b.ID,
				Type: "function",
				Function: ChatFunctionCall{
					Name:      b.Name,
					Arguments: encodeArguments(b.Input),
				},
			})
		case api.BlockTypeToolResult:
			// skip
		default:
			if s := api.Stringify(b.Raw); s != "" {
				parts = append(parts, s)
			}
		}
	}
	msg := ChatMessage{Role: "assistant", Content: strings.Join(parts, "\n")}
	if len(calls) > 0 {
		msg.ToolCalls = calls
	}
	return msg
}

// userFromBlocks splits a user block sequence into messages: each
// tool_result becomes an independent role:"tool" message, everything
// else accumulates into one user text message.
//
// The aggregated user text is always inserted before its sibling tool
// messages, regardless of how the blocks were interleaved. Existing
// callers depend on this ordering, so it is preserved as-is.
func userFromBlocks(blocks []api.ContentBlock) []ChatMessage {
	var parts []string
	var toolMsgs []ChatMessage
	for _, b := range blocks {
		switch b.Type {
		case api.BlockTypeToolResult:
			toolMsgs = append(toolMsgs, ChatMessage{
				Role:       "tool",
				ToolCallID: b.ToolUseID,
				Content:    api.Stringify(b.Content),
			})
		case api.BlockTypeText:
			parts = append(parts, b.Text)
		case api.BlockTypeOpaque:
			parts = append(parts, api.Stringify(b.Raw))
		default:
			parts = append(parts, api.Stringify(b))
		}
	}
	out := make([]ChatMessage, 0, len(toolMsgs)+1)
	if len(parts) > 0 {
		out = append(out, ChatMessage{Role: "user", Content: strings.Join(parts, "\n")})
	}
	out = append(out, toolMsgs...)
	if len(out) == 0 {
		out = append(out, ChatMessage{Role: "user", Content: ""})
	}
	return out
}

// encodeArguments serializes a tool_use input object, defaulting to {}.
func encodeArguments(input map[string]any) string {
	if len(input) == 0 {
		return "{}"
	}
	data, err := json.Marshal(input)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// translateToolChoice maps the canonical tool_choice onto the Chat
// Completions value space. Unknown choices are omitted rather than
// guessed.
func translateToolChoice(tc *api.ToolChoice) any {
	if tc == nil {
		return nil
	}
	switch tc.Type {
	case "auto":
		return "auto"
	case "any":
		return "required"
	case "none":
		return "none"
	case "tool":
		if tc.Name == "" {
			return nil
		}
		return map[string]any{
			"type":     "function",
			"function": map[string]any{"name": tc.Name},
		}
	default:
		return nil
	}
}
