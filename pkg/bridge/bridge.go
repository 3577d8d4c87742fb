// Package bridge orchestrates a single canonical-request round trip:
// decode the envelope, translate to the Chat Completions wire format,
// call the backend once, and translate the response back.
package bridge

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/mwalther/chatshim/pkg/api"
	"github.com/mwalther/chatshim/pkg/config"
	"github.com/mwalther/chatshim/pkg/debug"
	"github.com/mwalther/chatshim/pkg/provider/openaicompat"
)

// Fallbacks applied when neither the request nor the configuration
// pins a value.
const (
	DefaultModel     = "gpt-4o-mini"
	DefaultMaxTokens = 1024
)

// Bridge translates canonical requests into single Chat Completions
// calls. It holds no per-request state and is safe for concurrent use.
type Bridge struct {
	client        *openaicompat.Client
	modelOverride string
}

// New creates a Bridge wired to the configured backend.
func New(cfg *config.Config) *Bridge {
	return &Bridge{
		client: openaicompat.NewClient(
			cfg.Backend.BaseURL,
			cfg.Backend.EndpointPath,
			cfg.Backend.APIKey,
			cfg.Timeout(),
		),
		modelOverride: cfg.Backend.Model,
	}
}

// Invoke performs one round trip for an already-decoded request.
// Errors are always *api.BridgeError.
func (b *Bridge) Invoke(ctx context.Context, req *api.Request) (*api.Response, error) {
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	model := resolveModel(b.modelOverride, req.Model)
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	chatReq := openaicompat.BuildChatRequest(req, model, maxTokens)
	debug.Log("bridge", "invoking backend",
		"run_id", req.RunID,
		"model", model,
		"messages", len(chatReq.Messages),
		"tools", len(chatReq.Tools))

	chatResp, err := b.client.Complete(ctx, chatReq, req.Headers)
	if err != nil {
		return nil, err
	}

	resp := openaicompat.TranslateResponse(chatResp)
	debug.Log("bridge", "backend round trip complete",
		"run_id", req.RunID,
		"stop_reason", resp.StopReason,
		"blocks", len(resp.Blocks))
	return resp, nil
}

// Run executes one envelope read from in and writes the result to out.
// This is the stdin/stdout entry point used by complete mode.
func (b *Bridge) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	env, err := DecodeEnvelope(in)
	if err != nil {
		return err
	}
	resp, err := b.Invoke(ctx, &env.Request)
	if err != nil {
		return err
	}
	return EncodeResult(out, env.NormalizedMode(), resp)
}

// Close releases the underlying HTTP client.
func (b *Bridge) Close() error {
	return b.client.Close()
}

// resolveModel picks the effective model name: a configured override
// beats the request, which beats the built-in default.
func resolveModel(override, requested string) string {
	if m := strings.TrimSpace(override); m != "" {
		return m
	}
	if m := strings.TrimSpace(requested); m != "" {
		return m
	}
	return DefaultModel
}
