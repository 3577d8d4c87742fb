package bridge

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/mwalther/chatshim/pkg/api"
)

// Envelope is the outer frame read from the caller: a mode selector
// plus the canonical request.
type Envelope struct {
	Mode    string      `json:"mode,omitempty"`
	Request api.Request `json:"request"`
}

// Invocation modes. Stream mode only changes the output framing; the
// backend call itself is always synchronous.
const (
	ModeComplete = "complete"
	ModeStream   = "stream"
)

// NormalizedMode returns the envelope's mode lowercased and trimmed,
// defaulting to complete.
func (e *Envelope) NormalizedMode() string {
	mode := strings.ToLower(strings.TrimSpace(e.Mode))
	if mode == "" {
		return ModeComplete
	}
	return mode
}

// DecodeEnvelope reads and parses one envelope from r.
func DecodeEnvelope(r io.Reader) (*Envelope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, api.NewEnvelopeParseError("failed to read input: " + err.Error())
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, api.NewEnvelopeParseError("invalid envelope JSON: " + err.Error())
	}
	return &env, nil
}

// EncodeResult writes the canonical response to w. In stream mode the
// response is wrapped in a single terminal event object; in complete
// mode it is written bare. HTML escaping is disabled so tool inputs
// survive a round trip unmangled.
func EncodeResult(w io.Writer, mode string, resp *api.Response) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if mode == ModeStream {
		return enc.Encode(map[string]any{"response": resp})
	}
	return enc.Encode(resp)
}
