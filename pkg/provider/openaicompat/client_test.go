package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mwalther/chatshim/pkg/api"
)

func TestClientComplete(t *testing.T) {
	var gotPath, gotAuth, gotTrace string
	var gotBody ChatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotTrace = r.Header.Get("X-Trace-Id")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []ChatChoice{{
				Message:      ChatChoiceMessage{Role: "assistant", Content: "hi"},
				FinishReason: "stop",
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "sk-test", time.Second)
	defer client.Close()

	resp, err := client.Complete(context.Background(), ChatCompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	}, map[string]string{"X-Trace-Id": "trace-1"})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q, want default endpoint", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("authorization = %q, want bearer token", gotAuth)
	}
	if gotTrace != "trace-1" {
		t.Errorf("X-Trace-Id = %q, want forwarded header", gotTrace)
	}
	if gotBody.Model != "gpt-4o-mini" || len(gotBody.Messages) != 1 {
		t.Errorf("body = %+v, want request forwarded", gotBody)
	}
	if len(resp.Choices) != 1 {
		t.Errorf("choices = %d, want 1", len(resp.Choices))
	}
}

func TestClientComplete_ExtraHeaderCannotShadowAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "sk-real", time.Second)
	defer client.Close()

	_, err := client.Complete(context.Background(), ChatCompletionRequest{},
		map[string]string{"Authorization": "Bearer sk-spoofed"})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if gotAuth != "Bearer sk-real" {
		t.Errorf("authorization = %q, want configured key to win", gotAuth)
	}
}

func TestClientComplete_NoAPIKey(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", time.Second)
	defer client.Close()

	if _, err := client.Complete(context.Background(), ChatCompletionRequest{}, nil); err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if hasAuth {
		t.Errorf("authorization = %q, want header absent without an API key", gotAuth)
	}
}

func TestClientComplete_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", time.Second)
	defer client.Close()

	_, err := client.Complete(context.Background(), ChatCompletionRequest{}, nil)
	if err == nil {
		t.Fatal("Complete() should fail on HTTP 429")
	}
	bridgeErr, ok := err.(*api.BridgeError)
	if !ok {
		t.Fatalf("error type = %T, want *api.BridgeError", err)
	}
	if bridgeErr.Kind != api.ErrorKindTransport {
		t.Errorf("kind = %q, want transport", bridgeErr.Kind)
	}
	if bridgeErr.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", bridgeErr.Status)
	}
	if !strings.Contains(bridgeErr.Message, "rate limit exceeded") {
		t.Errorf("message = %q, want backend message extracted", bridgeErr.Message)
	}
}

func TestClientComplete_HTTPErrorOpaqueBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", time.Second)
	defer client.Close()

	_, err := client.Complete(context.Background(), ChatCompletionRequest{}, nil)
	bridgeErr, ok := err.(*api.BridgeError)
	if !ok {
		t.Fatalf("error type = %T, want *api.BridgeError", err)
	}
	if !strings.Contains(bridgeErr.Message, "backend returned HTTP 502") {
		t.Errorf("message = %q, want status fallback", bridgeErr.Message)
	}
	if !strings.Contains(bridgeErr.Message, "upstream exploded") {
		t.Errorf("message = %q, want body excerpt", bridgeErr.Message)
	}
}

func TestClientComplete_MalformedResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", time.Second)
	defer client.Close()

	_, err := client.Complete(context.Background(), ChatCompletionRequest{}, nil)
	bridgeErr, ok := err.(*api.BridgeError)
	if !ok {
		t.Fatalf("error type = %T, want *api.BridgeError", err)
	}
	if bridgeErr.Kind != api.ErrorKindUpstreamParse {
		t.Errorf("kind = %q, want upstream_parse", bridgeErr.Kind)
	}
	if bridgeErr.Excerpt != "this is not json" {
		t.Errorf("excerpt = %q, want raw body kept", bridgeErr.Excerpt)
	}
}

func TestClientComplete_ConnectionRefused(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, "", "", time.Second)
	defer client.Close()

	_, err := client.Complete(context.Background(), ChatCompletionRequest{}, nil)
	bridgeErr, ok := err.(*api.BridgeError)
	if !ok {
		t.Fatalf("error type = %T, want *api.BridgeError", err)
	}
	if bridgeErr.Kind != api.ErrorKindTransport || bridgeErr.Status != 0 {
		t.Errorf("got kind=%q status=%d, want transport with no status", bridgeErr.Kind, bridgeErr.Status)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("http://localhost:8000/", "", "", 0)
	defer client.Close()

	if client.baseURL != "http://localhost:8000" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", client.baseURL)
	}
	if client.endpointPath != DefaultEndpointPath {
		t.Errorf("endpointPath = %q, want default", client.endpointPath)
	}
	if client.httpClient.Timeout != 120*time.Second {
		t.Errorf("timeout = %v, want 120s default", client.httpClient.Timeout)
	}
}
