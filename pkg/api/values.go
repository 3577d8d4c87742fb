package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Stringify coerces an arbitrary JSON value to text: nil becomes the
// empty string, strings pass through unchanged, and everything else is
// JSON-encoded. Used wherever the backend schema needs flat text for a
// value the canonical schema leaves loosely typed.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

// IntFromAny coerces an arbitrary JSON value to an int, returning 0 for
// anything absent, null, or non-numeric.
func IntFromAny(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
