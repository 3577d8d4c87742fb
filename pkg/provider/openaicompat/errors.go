package openaicompat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mwalther/chatshim/pkg/api"
	"github.com/mwalther/chatshim/pkg/debug"
)

// MapHTTPError converts a non-2xx backend response into a transport
// error, extracting the backend's error message when the body carries
// one.
func MapHTTPError(resp *http.Response) *api.BridgeError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := extractErrorMessage(body)
	if message == "" {
		message = fmt.Sprintf("backend returned HTTP %d", resp.StatusCode)
		if excerpt := strings.TrimSpace(string(body)); excerpt != "" {
			message += ": " + debug.Truncate(excerpt, 512)
		}
	}
	return api.NewTransportError(resp.StatusCode, message)
}

// MapNetworkError converts a connection-level failure (refused
// connection, DNS failure, timeout) into a transport error.
func MapNetworkError(err error) *api.BridgeError {
	return api.NewTransportError(0, "backend connection error: "+err.Error())
}

// extractErrorMessage parses the body as a ChatErrorResponse and returns
// its message, or "" when the body carries no recognizable error.
func extractErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var errResp ChatErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return ""
}
