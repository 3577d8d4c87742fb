package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwalther/chatshim/pkg/api"
	"github.com/mwalther/chatshim/pkg/debug"
)

// DefaultEndpointPath is the standard Chat Completions route.
const DefaultEndpointPath = "/v1/chat/completions"

// defaultTimeout bounds the backend call when none is configured.
const defaultTimeout = 120 * time.Second

// Client performs the single synchronous HTTP call against a Chat
// Completions backend. One failed attempt is terminal: there is no
// retry and no partial result.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	endpointPath string
	apiKey       string
}

// NewClient creates a Client for the given backend. endpointPath
// defaults to DefaultEndpointPath and timeout to 120s when zero.
func NewClient(baseURL, endpointPath, apiKey string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if strings.TrimSpace(endpointPath) == "" {
		endpointPath = DefaultEndpointPath
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		endpointPath: endpointPath,
		apiKey:       apiKey,
	}
}

// Complete posts the chat request and decodes the backend response.
// extraHeaders are forwarded verbatim but cannot shadow the content
// type or authorization headers.
func (c *Client) Complete(ctx context.Context, chatReq ChatCompletionRequest, extraHeaders map[string]string) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, api.NewTransportError(0, "failed to marshal backend request: "+err.Error())
	}

	url := c.baseURL + c.endpointPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewTransportError(0, "failed to create HTTP request: "+err.Error())
	}
	for k, v := range extraHeaders {
		if strings.TrimSpace(k) == "" {
			continue
		}
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	debug.Log("transport", "backend request", "url", url, "bytes", len(body))
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, MapHTTPError(httpResp)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, api.NewTransportError(0, "failed to read backend response: "+err.Error())
	}
	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		return nil, api.NewUpstreamParseError("backend response is not valid JSON: "+err.Error(), raw)
	}
	debug.Log("transport", "backend response", "status", httpResp.StatusCode, "choices", len(chatResp.Choices))
	return &chatResp, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
