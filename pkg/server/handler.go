package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mwalther/chatshim/pkg/api"
	"github.com/mwalther/chatshim/pkg/bridge"
	"github.com/mwalther/chatshim/pkg/debug"
	"github.com/mwalther/chatshim/pkg/observability"
)

// maxBodySize bounds the accepted envelope size.
const maxBodySize = 10 << 20 // 10 MB

// handleBridge accepts one envelope as the POST body and replies with
// the canonical response or an error object.
func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	env, err := bridge.DecodeEnvelope(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		observability.RecordBridge("unknown", outcomeFor(err), time.Since(start).Seconds())
		return
	}
	mode := env.NormalizedMode()

	resp, err := s.bridge.Invoke(r.Context(), &env.Request)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		observability.RecordBridge(mode, outcomeFor(err), time.Since(start).Seconds())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := bridge.EncodeResult(w, mode, resp); err != nil {
		debug.Log("server", "failed to write response", "error", err)
	}
	observability.RecordBridge(mode, "ok", time.Since(start).Seconds())
	observability.RecordTokens(resp.Usage.InputTokens, resp.Usage.OutputTokens)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// writeError renders an error as the standard error object.
func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var bridgeErr *api.BridgeError
	if !errors.As(err, &bridgeErr) {
		bridgeErr = api.NewTransportError(0, err.Error())
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(api.ErrorResponse{Error: bridgeErr})
}

// outcomeFor maps an error onto its metrics outcome label.
func outcomeFor(err error) string {
	var bridgeErr *api.BridgeError
	if errors.As(err, &bridgeErr) {
		return string(bridgeErr.Kind)
	}
	return "error"
}
