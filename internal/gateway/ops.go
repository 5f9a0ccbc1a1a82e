package gateway

import (
	"context"
	"net/http"

	"ollamamcp/internal/jsonv"
	"ollamamcp/pkg/types"
)

func parse(endpoint string, body []byte) (jsonv.Value, error) {
	v, err := jsonv.Parse(body)
	if err != nil {
		return jsonv.Value{}, &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	return v, nil
}

// Generate completes prompt with model and returns the "response" field.
func (g *Gateway) Generate(ctx context.Context, model, prompt string, temperature float64) (string, error) {
	body, err := g.do(ctx, http.MethodPost, "/generate", types.GenerateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Options: types.Options{Temperature: temperature},
	})
	if err != nil {
		return "", err
	}
	v, err := parse("/generate", body)
	if err != nil {
		return "", err
	}
	return v.Lookup("response").String(""), nil
}

// Chat sends messages in order and returns the reply's message.content.
func (g *Gateway) Chat(ctx context.Context, model string, messages []types.ChatMessage, temperature float64) (string, error) {
	if messages == nil {
		messages = []types.ChatMessage{}
	}
	body, err := g.do(ctx, http.MethodPost, "/chat", types.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options:  types.Options{Temperature: temperature},
	})
	if err != nil {
		return "", err
	}
	v, err := parse("/chat", body)
	if err != nil {
		return "", err
	}
	return v.Lookup("message", "content").String(""), nil
}

// ListModels returns the "models" array of GET /tags element by element, each
// as the backend's JSON text. A missing array yields an empty, non-nil slice.
func (g *Gateway) ListModels(ctx context.Context) ([]types.ModelInfo, error) {
	body, err := g.do(ctx, http.MethodGet, "/tags", nil)
	if err != nil {
		return nil, err
	}
	v, err := parse("/tags", body)
	if err != nil {
		return nil, err
	}
	entries := v.Lookup("models").Array()
	models := make([]types.ModelInfo, 0, len(entries))
	for _, e := range entries {
		models = append(models, types.ModelInfo(e.Raw()))
	}
	return models, nil
}

// PullModel downloads model without progress reporting. The response body is
// not inspected.
func (g *Gateway) PullModel(ctx context.Context, model string) (string, error) {
	if _, err := g.do(ctx, http.MethodPost, "/pull", types.PullRequest{Model: model, Stream: false}); err != nil {
		return "", err
	}
	return "Successfully pulled model: " + model, nil
}

// ModelInfo fetches POST /show for modelName and renders it as markdown.
func (g *Gateway) ModelInfo(ctx context.Context, modelName string) (string, error) {
	body, err := g.do(ctx, http.MethodPost, "/show", types.ShowRequest{Model: modelName})
	if err != nil {
		return "", err
	}
	v, err := parse("/show", body)
	if err != nil {
		return "", err
	}
	return RenderModelInfo(modelName, v), nil
}
