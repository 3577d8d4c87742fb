package api

import (
	"encoding/json"
	"testing"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string passthrough", "hello", "hello"},
		{"number", 42.0, "42"},
		{"bool", true, "true"},
		{"object", map[string]any{"a": 1}, `{"a":1}`},
		{"array", []any{"x", 2.0}, `["x",2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.input); got != tt.want {
				t.Errorf("Stringify(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIntFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"nil", nil, 0},
		{"int", 7, 7},
		{"int64", int64(8), 8},
		{"float64", 9.7, 9},
		{"json number", json.Number("12"), 12},
		{"json float number", json.Number("3.9"), 3},
		{"numeric string", " 15 ", 15},
		{"garbage string", "abc", 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntFromAny(tt.input); got != tt.want {
				t.Errorf("IntFromAny(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
