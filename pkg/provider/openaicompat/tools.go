package openaicompat

import (
	"strings"

	"github.com/mwalther/chatshim/pkg/api"
)

// defaultToolDescription is sent when a tool declares none; some
// backends reject tools with an empty description.
const defaultToolDescription = "No description provided"

// TranslateTools converts canonical tool declarations into Chat
// Completions function tools, preserving order. An empty input yields an
// empty slice; callers omit the tools field entirely in that case.
func TranslateTools(tools []api.Tool) []ChatTool {
	out := make([]ChatTool, 0, len(tools))
	for _, t := range tools {
		desc := strings.TrimSpace(t.Description)
		if desc == "" {
			desc = defaultToolDescription
		}
		params := t.InputSchema
		if len(params) == 0 {
			params = map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			}
		}
		out = append(out, ChatTool{
			Type: "function",
			Function: ChatFunctionDef{
				Name:        t.Name,
				Description: desc,
				Parameters:  params,
			},
		})
	}
	return out
}
