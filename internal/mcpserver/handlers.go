package mcpserver

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"ollamamcp/internal/gateway"
	"ollamamcp/pkg/types"
)

type handlers struct {
	svc Service
	log zerolog.Logger
}

// invoke runs fn under a call id, logs and counts it.
func (h *handlers) invoke(ctx context.Context, name string, fn func(context.Context) (string, error)) (string, error) {
	id := uuid.NewString()
	start := time.Now()
	h.log.Debug().Str("call_id", id).Str("tool", name).Msg("call start")
	out, err := fn(ctx)
	ev := h.log.Info()
	outcome := "ok"
	if err != nil {
		ev = h.log.Warn().Err(err)
		outcome = "error"
	}
	toolCallsTotal.WithLabelValues(name, outcome).Inc()
	ev.Str("call_id", id).Str("tool", name).Dur("dur", time.Since(start)).Str("outcome", outcome).Msg("call end")
	return out, err
}

// toolResult converts an operation outcome into a tool result. Failures are
// reported to the caller as error results, never as empty successes.
func (h *handlers) toolResult(ctx context.Context, name string, fn func(context.Context) (string, error)) (*mcp.CallToolResult, error) {
	out, err := h.invoke(ctx, name, fn)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error executing tool %s: %v", name, err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (h *handlers) badArgs(name string, err error) (*mcp.CallToolResult, error) {
	toolCallsTotal.WithLabelValues(name, "invalid_args").Inc()
	h.log.Warn().Str("tool", name).Err(err).Msg("invalid arguments")
	return mcp.NewToolResultError(fmt.Sprintf("Error executing tool %s: %v", name, err)), nil
}

func (h *handlers) generate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := req.RequireString("model")
	if err != nil {
		return h.badArgs("generate", err)
	}
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return h.badArgs("generate", err)
	}
	temperature := req.GetFloat("temperature", gateway.DefaultTemperature)
	return h.toolResult(ctx, "generate", func(ctx context.Context) (string, error) {
		return h.svc.Generate(ctx, model, prompt, temperature)
	})
}

func (h *handlers) chat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := req.RequireString("model")
	if err != nil {
		return h.badArgs("chat", err)
	}
	messages, err := decodeMessages(req.GetArguments()["messages"])
	if err != nil {
		return h.badArgs("chat", err)
	}
	temperature := req.GetFloat("temperature", gateway.DefaultTemperature)
	return h.toolResult(ctx, "chat", func(ctx context.Context) (string, error) {
		return h.svc.Chat(ctx, model, messages, temperature)
	})
}

// decodeMessages checks that the "messages" argument is a list of objects and
// hands them on untouched, in order.
func decodeMessages(raw any) ([]types.ChatMessage, error) {
	if raw == nil {
		return nil, fmt.Errorf("required argument %q not found", "messages")
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array", "messages")
	}
	msgs := make([]types.ChatMessage, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("argument %q: element %d must be an object", "messages", i)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (h *handlers) listModels(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.toolResult(ctx, "list_models", func(ctx context.Context) (string, error) {
		models, err := h.svc.ListModels(ctx)
		if err != nil {
			return "", err
		}
		// entries are raw backend JSON, emitted in the backend's order
		b, err := sonic.Marshal(models)
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
}

func (h *handlers) pullModel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model, err := req.RequireString("model")
	if err != nil {
		return h.badArgs("pull_model", err)
	}
	return h.toolResult(ctx, "pull_model", func(ctx context.Context) (string, error) {
		return h.svc.PullModel(ctx, model)
	})
}

func (h *handlers) modelInfo(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	name := ModelNameFromURI(uri)
	text, err := h.invoke(ctx, "get_model_info", func(ctx context.Context) (string, error) {
		return h.svc.ModelInfo(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "text/markdown", Text: text},
	}, nil
}

// ModelNameFromURI extracts the model name from a model:// URI.
// Percent-escapes are decoded when valid.
func ModelNameFromURI(uri string) string {
	name := strings.TrimPrefix(uri, modelURIScheme)
	if dec, err := url.PathUnescape(name); err == nil {
		return dec
	}
	return name
}
