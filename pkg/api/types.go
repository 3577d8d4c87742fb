package api

// StopReason enumerates why a model turn ended.
type StopReason string

const (
	StopReasonEndTurn   StopReason = "end_turn"
	StopReasonToolUse   StopReason = "tool_use"
	StopReasonMaxTokens StopReason = "max_tokens"
)

// Request is the canonical chat-completion request.
//
// RunID, Metadata, and Headers come from the enclosing envelope protocol.
// Headers are forwarded verbatim to the backend HTTP call; Metadata is
// carried for diagnostics only.
type Request struct {
	RunID         string            `json:"run_id,omitempty"`
	Model         string            `json:"model,omitempty"`
	MaxTokens     int               `json:"max_tokens,omitempty"`
	System        any               `json:"system,omitempty"`
	Messages      []Message         `json:"messages"`
	Tools         []Tool            `json:"tools,omitempty"`
	ToolChoice    *ToolChoice       `json:"tool_choice,omitempty"`
	Temperature   *float64          `json:"temperature,omitempty"`
	TopP          *float64          `json:"top_p,omitempty"`
	StopSequences []string          `json:"stop_sequences,omitempty"`
	Metadata      map[string]any    `json:"metadata,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
}

// Message is one canonical conversation entry. Content may be a plain
// string, an ordered block sequence, or any other JSON value (which
// translation coerces to text).
type Message struct {
	Role    string         `json:"role"`
	Content MessageContent `json:"content"`
}

// Tool declares a callable tool in canonical form.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

// Usage holds token accounting for one response.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response is the canonical chat-completion response. Blocks are
// restricted to text and tool_use.
type Response struct {
	Model      string         `json:"model"`
	Blocks     []ContentBlock `json:"blocks"`
	StopReason StopReason     `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}
