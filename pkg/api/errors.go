package api

import "fmt"

// ErrorKind categorizes a fatal bridge error.
type ErrorKind string

const (
	// ErrorKindEnvelopeParse: the input document is not valid JSON.
	// Raised before any translation or network activity.
	ErrorKindEnvelopeParse ErrorKind = "envelope_parse"

	// ErrorKindTransport: the backend call failed at the HTTP or network
	// level (non-2xx status, connection failure, timeout).
	ErrorKindTransport ErrorKind = "transport"

	// ErrorKindUpstreamParse: the backend returned a body that is not
	// valid JSON.
	ErrorKindUpstreamParse ErrorKind = "upstream_parse"
)

// excerptLimit bounds the raw-body excerpt carried on upstream parse
// errors.
const excerptLimit = 512

// BridgeError is a fatal error at the bridge boundary. All kinds
// short-circuit the invocation: no result document is written and no
// retry is attempted.
type BridgeError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	// Status carries the upstream HTTP status for transport errors.
	Status int `json:"status,omitempty"`

	// Excerpt carries a truncated copy of the undecodable upstream body
	// for upstream_parse errors.
	Excerpt string `json:"excerpt,omitempty"`
}

func (e *BridgeError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	case e.Excerpt != "":
		return fmt.Sprintf("%s: %s; raw=%s", e.Kind, e.Message, e.Excerpt)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// ErrorResponse wraps a BridgeError as the top-level error document
// emitted by serve mode.
type ErrorResponse struct {
	Error *BridgeError `json:"error"`
}

// NewEnvelopeParseError creates a BridgeError for an unreadable input
// document.
func NewEnvelopeParseError(message string) *BridgeError {
	return &BridgeError{Kind: ErrorKindEnvelopeParse, Message: message}
}

// NewTransportError creates a BridgeError for a failed backend call.
// status is 0 for connection-level failures with no HTTP response.
func NewTransportError(status int, message string) *BridgeError {
	return &BridgeError{Kind: ErrorKindTransport, Status: status, Message: message}
}

// NewUpstreamParseError creates a BridgeError for an undecodable backend
// body, keeping a truncated excerpt for diagnosis.
func NewUpstreamParseError(message string, raw []byte) *BridgeError {
	excerpt := string(raw)
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit] + "..."
	}
	return &BridgeError{Kind: ErrorKindUpstreamParse, Message: message, Excerpt: excerpt}
}
