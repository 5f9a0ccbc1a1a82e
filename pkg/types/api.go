package types

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	// Model identifier, passed through verbatim.
	// example: llama3
	Model string `json:"model" example:"llama3"`
	// Prompt text to complete.
	// example: Write a haiku about the ocean.
	Prompt string `json:"prompt" example:"Write a haiku about the ocean."`
	// Always false: the gateway never relays token streams.
	Stream bool `json:"stream"`
	// Sampling options.
	Options Options `json:"options"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	// Model identifier, passed through verbatim.
	// example: llama3
	Model string `json:"model" example:"llama3"`
	// Conversation in turn order.
	Messages []ChatMessage `json:"messages"`
	// Always false: the gateway never relays token streams.
	Stream bool `json:"stream"`
	// Sampling options.
	Options Options `json:"options"`
}

// PullRequest is the body of POST /pull.
type PullRequest struct {
	// example: llama3
	Model  string `json:"model" example:"llama3"`
	Stream bool   `json:"stream"`
}

// ShowRequest is the body of POST /show.
type ShowRequest struct {
	// example: llama3
	Model string `json:"model" example:"llama3"`
}

// ErrorResponse is the payload Ollama returns alongside non-2xx statuses.
type ErrorResponse struct {
	// example: model "llama9" not found, try pulling it first
	Error string `json:"error"`
}
