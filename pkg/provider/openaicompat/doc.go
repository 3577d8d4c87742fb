// Package openaicompat translates between the canonical block-structured
// chat schema and the OpenAI-style Chat Completions schema, and performs
// the single synchronous backend call.
//
// All translation functions are pure: they hold no state across calls
// and are safe for concurrent use.
package openaicompat
