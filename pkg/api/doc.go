// Package api defines the canonical, block-structured chat schema that
// chatshim accepts and produces, together with the error kinds surfaced
// at the bridge boundary.
//
// The canonical format is backend-agnostic: messages carry either plain
// text or an ordered sequence of content blocks (text, tool_use,
// tool_result). Translation to and from the backend's Chat Completions
// schema lives in pkg/provider/openaicompat.
package api
