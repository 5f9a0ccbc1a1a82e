// Package mcpserver exposes the gateway operations as MCP tools and the
// model://{model_name} resource.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"ollamamcp/internal/gateway"
	"ollamamcp/pkg/types"
)

const (
	serverName         = "Ollama"
	serverInstructions = "MCP server for Ollama API integration"

	// ModelResourceTemplate addresses per-model info.
	ModelResourceTemplate = "model://{model_name}"
	modelURIScheme        = "model://"
)

// Service defines the operations the MCP layer forwards to.
type Service interface {
	Generate(ctx context.Context, model, prompt string, temperature float64) (string, error)
	Chat(ctx context.Context, model string, messages []types.ChatMessage, temperature float64) (string, error)
	ListModels(ctx context.Context) ([]types.ModelInfo, error)
	PullModel(ctx context.Context, model string) (string, error)
	ModelInfo(ctx context.Context, modelName string) (string, error)
}

var _ Service = (*gateway.Gateway)(nil)

// Options tune the MCP server.
type Options struct {
	Version string
	// Logger receives one line per tool call or resource read. Nil disables logging.
	Logger *zerolog.Logger
}

// New builds an MCP server with every tool and resource registered.
func New(svc Service, opts Options) *server.MCPServer {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	h := &handlers{svc: svc, log: zerolog.Nop()}
	if opts.Logger != nil {
		h.log = *opts.Logger
	}

	s := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions(serverInstructions),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("generate",
		mcp.WithDescription("Generate a completion using an Ollama model."),
		mcp.WithString("model", mcp.Required(), mcp.Description(`The name of the model to use (e.g., "llama3")`)),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("The prompt text to generate from")),
		mcp.WithNumber("temperature", mcp.DefaultNumber(gateway.DefaultTemperature),
			mcp.Description("Controls randomness (0.0 to 1.0, lower is more deterministic)")),
	), h.generate)

	s.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Generate a chat completion using an Ollama model."),
		mcp.WithString("model", mcp.Required(), mcp.Description(`The name of the model to use (e.g., "llama3")`)),
		mcp.WithArray("messages", mcp.Required(),
			mcp.Description("List of message objects with role and content"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"role":    map[string]any{"type": "string"},
					"content": map[string]any{"type": "string"},
				},
				"required": []string{"role", "content"},
			}),
		),
		mcp.WithNumber("temperature", mcp.DefaultNumber(gateway.DefaultTemperature),
			mcp.Description("Controls randomness (0.0 to 1.0, lower is more deterministic)")),
	), h.chat)

	s.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List all available models in the Ollama server."),
	), h.listModels)

	s.AddTool(mcp.NewTool("pull_model",
		mcp.WithDescription("Pull a model from the Ollama library."),
		mcp.WithString("model", mcp.Required(), mcp.Description(`The name of the model to pull (e.g., "llama3")`)),
	), h.pullModel)

	s.AddResourceTemplate(mcp.NewResourceTemplate(ModelResourceTemplate, "get_model_info",
		mcp.WithTemplateDescription("Get information about a specific model."),
		mcp.WithTemplateMIMEType("text/markdown"),
	), h.modelInfo)

	return s
}
