package api

import "encoding/json"

// BlockType tags a ContentBlock variant.
type BlockType string

const (
	BlockTypeText       BlockType = "text"
	BlockTypeToolUse    BlockType = "tool_use"
	BlockTypeToolResult BlockType = "tool_result"

	// BlockTypeOpaque marks content that matched no known block shape.
	// Translation coerces opaque blocks to text.
	BlockTypeOpaque BlockType = ""
)

// ContentBlock is the tagged union of canonical content block shapes.
// Exactly the fields for the variant named by Type are meaningful.
type ContentBlock struct {
	Type BlockType

	// Text is set for text blocks.
	Text string

	// ID, Name, and Input are set for tool_use blocks. Input is nil when
	// the source carried no object input; it always encodes as {}.
	ID    string
	Name  string
	Input map[string]any

	// ToolUseID and Content are set for tool_result blocks.
	ToolUseID string
	Content   any

	// Raw holds the original value for opaque blocks.
	Raw any
}

// UnmarshalJSON decodes a block tolerantly: anything that is not an
// object with a recognized "type" becomes an opaque block.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m, ok := v.(map[string]any)
	if !ok {
		*b = ContentBlock{Type: BlockTypeOpaque, Raw: v}
		return nil
	}
	switch stringField(m, "type") {
	case "text":
		*b = ContentBlock{Type: BlockTypeText, Text: Stringify(m["text"])}
	case "tool_use":
		input, _ := m["input"].(map[string]any)
		*b = ContentBlock{
			Type:  BlockTypeToolUse,
			ID:    stringField(m, "id"),
			Name:  stringField(m, "name"),
			Input: input,
		}
	case "tool_result":
		id := stringField(m, "tool_use_id")
		if id == "" {
			id = stringField(m, "id")
		}
		*b = ContentBlock{Type: BlockTypeToolResult, ToolUseID: id, Content: m["content"]}
	default:
		*b = ContentBlock{Type: BlockTypeOpaque, Raw: m}
	}
	return nil
}

// MarshalJSON encodes the block in canonical wire form.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch b.Type {
	case BlockTypeText:
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{"text", b.Text})
	case BlockTypeToolUse:
		input := b.Input
		if input == nil {
			input = map[string]any{}
		}
		return json.Marshal(struct {
			Type  string         `json:"type"`
			ID    string         `json:"id"`
			Name  string         `json:"name"`
			Input map[string]any `json:"input"`
		}{"tool_use", b.ID, b.Name, input})
	case BlockTypeToolResult:
		return json.Marshal(struct {
			Type      string `json:"type"`
			ToolUseID string `json:"tool_use_id"`
			Content   any    `json:"content"`
		}{"tool_result", b.ToolUseID, b.Content})
	default:
		return json.Marshal(b.Raw)
	}
}

// ContentKind tags a MessageContent variant.
type ContentKind int

const (
	ContentKindText ContentKind = iota
	ContentKindBlocks
	ContentKindOpaque
)

// MessageContent holds a message body: a plain string, an ordered block
// sequence, or any other JSON value.
type MessageContent struct {
	Kind   ContentKind
	Text   string
	Blocks []ContentBlock
	Raw    any
}

// TextContent wraps a plain string body.
func TextContent(s string) MessageContent {
	return MessageContent{Kind: ContentKindText, Text: s}
}

// BlockContent wraps an ordered block sequence.
func BlockContent(blocks ...ContentBlock) MessageContent {
	return MessageContent{Kind: ContentKindBlocks, Blocks: blocks}
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = MessageContent{Kind: ContentKindText, Text: s}
		return nil
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err == nil {
		*c = MessageContent{Kind: ContentKindBlocks, Blocks: blocks}
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = MessageContent{Kind: ContentKindOpaque, Raw: v}
	return nil
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ContentKindText:
		return json.Marshal(c.Text)
	case ContentKindBlocks:
		blocks := c.Blocks
		if blocks == nil {
			blocks = []ContentBlock{}
		}
		return json.Marshal(blocks)
	default:
		return json.Marshal(c.Raw)
	}
}

// ToolChoice mirrors the canonical tool_choice value, which arrives
// either as a bare string ("auto", "any", "none") or as an object
// naming a specific tool.
type ToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

func (tc *ToolChoice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*tc = ToolChoice{Type: s}
		return nil
	}
	type plain ToolChoice
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*tc = ToolChoice(p)
	return nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
