package openaicompat

import "encoding/json"

// Chat Completions request/response types. These mirror the wire format
// of /v1/chat/completions backends.

// ChatCompletionRequest is the request body for the chat endpoint.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Tools       []ChatTool    `json:"tools,omitempty"`
	ToolChoice  any           `json:"tool_choice,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
	Stream      bool          `json:"stream"`
}

// ChatMessage is an outbound message in Chat Completions format. Content
// is always flat text; tool invocations ride in ToolCalls and tool
// results in separate role:"tool" messages keyed by ToolCallID.
type ChatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []ChatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// ChatToolCall is a tool call entry in an assistant message.
type ChatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ChatFunctionCall `json:"function"`
}

// ChatFunctionCall holds a function name and JSON-encoded arguments.
type ChatFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatTool is a tool declaration in Chat Completions format.
type ChatTool struct {
	Type     string          `json:"type"`
	Function ChatFunctionDef `json:"function"`
}

// ChatFunctionDef is the function half of a tool declaration.
type ChatFunctionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatCompletionResponse is the non-streaming backend response.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *ChatUsage   `json:"usage,omitempty"`
}

// ChatChoice is one completion choice. Only choices[0] is consumed.
type ChatChoice struct {
	Index        int               `json:"index"`
	Message      ChatChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// ChatChoiceMessage is the assistant message inside a choice. Content is
// kept loose because backends send either a string or null.
type ChatChoiceMessage struct {
	Role      string                 `json:"role"`
	Content   any                    `json:"content"`
	ToolCalls []ChatResponseToolCall `json:"tool_calls,omitempty"`
}

// ChatResponseToolCall is a tool call in a backend response.
type ChatResponseToolCall struct {
	ID       string                   `json:"id"`
	Type     string                   `json:"type"`
	Function ChatResponseFunctionCall `json:"function"`
}

// ChatResponseFunctionCall holds a returned function call. Arguments is
// kept raw: conforming backends send a JSON-encoded string, but some
// send the arguments object inline.
type ChatResponseFunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ChatUsage holds token usage. Fields are loose so that null or
// non-numeric counts coerce to zero instead of failing the decode.
type ChatUsage struct {
	PromptTokens     any `json:"prompt_tokens"`
	CompletionTokens any `json:"completion_tokens"`
	TotalTokens      any `json:"total_tokens"`
}

// ChatErrorResponse is the error body returned by Chat Completions
// backends.
type ChatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}
