package types

import "github.com/bytedance/sonic"

// ChatMessage is a single conversation turn as supplied by the caller. It
// carries at least "role" and "content"; any other keys (name, images,
// tool_calls, ...) are forwarded to the backend unchanged.
type ChatMessage = map[string]any

// Options carries generation parameters nested under "options".
// Temperature is always serialized; zero is a meaningful value.
type Options struct {
	// example: 0.7
	Temperature float64 `json:"temperature" example:"0.7"`
}

// ModelInfo is one entry of the backend's model listing, held as the JSON
// text the backend sent so every value type and key order survive.
type ModelInfo = sonic.NoCopyRawMessage
