// Package cli wires configuration, logging and transports into the
// ollama-mcp command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"ollamamcp/internal/config"
	"ollamamcp/internal/gateway"
	"ollamamcp/internal/httpapi"
	"ollamamcp/internal/mcpserver"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// NewRootCmd constructs the command tree. The root command and "serve" both run the server.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ollama-mcp",
		Short:         "MCP server for Ollama API integration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml|.yml|.json|.toml)")
	pf.String("env-file", ".env", "Dotenv file loaded before reading the environment (missing is fine)")
	pf.String("base-url", "", "Ollama API base URL (default "+config.DefaultBaseURL+", env "+config.EnvBaseURL+")")
	pf.String("timeout", "", "Per-call timeout, e.g. 300s or 300 (default "+config.DefaultTimeout+")")
	pf.String("transport", "", "MCP transport: stdio|http (default stdio)")
	pf.String("addr", "", "Listen address for the http transport (default "+config.DefaultAddr+")")
	pf.String("log-level", "", "Log level: debug|info|warn|error|off (default info)")
	pf.String("log-format", "", "Log format: console|json (default console)")

	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the MCP server",
		Example: "  ollama-mcp serve\n  ollama-mcp serve --transport http --addr :8000",
		Args:    cobra.NoArgs,
		RunE:    runServe,
	}
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "ollama-mcp %s\n", Version)
			return err
		},
	}
	root.AddCommand(serveCmd, versionCmd)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// resolveConfig applies defaults < file < environment < explicit flags.
func resolveConfig(cmd *cobra.Command, getenv func(string) string) (config.Config, error) {
	flags := cmd.Flags()
	envFile, _ := flags.GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, fmt.Errorf("env file: %w", err)
	}

	var cfg config.Config
	if path, _ := flags.GetString("config"); path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("config: %w", err)
		}
		cfg = fileCfg
	}
	cfg = config.Merge(cfg, config.FromEnv(getenv))

	var fromFlags config.Config
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("base-url", &fromFlags.BaseURL)
	str("timeout", &fromFlags.Timeout)
	str("transport", &fromFlags.Transport)
	str("addr", &fromFlags.Addr)
	str("log-level", &fromFlags.LogLevel)
	str("log-format", &fromFlags.LogFormat)
	cfg = config.Merge(cfg, fromFlags).WithDefaults()

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// run serves MCP on the configured transport until ctx is done or, for
// stdio, stdin is closed.
func run(ctx context.Context, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return err
	}

	gw := gateway.New(gateway.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   timeout,
		UserAgent: "ollama-mcp/" + Version,
		Logger:    &logger,
	})
	s := mcpserver.New(gw, mcpserver.Options{Version: Version, Logger: &logger})

	logger.Info().Str("transport", cfg.Transport).Str("base_url", gw.BaseURL()).Dur("timeout", gw.Timeout()).Msg("starting Ollama MCP server")

	switch cfg.Transport {
	case config.TransportHTTP:
		httpapi.SetLogger(logger)
		httpapi.SetAccessLogLevel(cfg.LogLevel)
		httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
		mux := httpapi.NewMux(server.NewStreamableHTTPServer(s))
		return httpapi.ListenAndServe(ctx, cfg.Addr, mux)
	default:
		stdio := server.NewStdioServer(s)
		stdio.SetErrorLogger(log.New(logger, "", 0))
		err := stdio.Listen(ctx, stdin, stdout)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			logger.Info().Msg("stdio transport closed")
			return nil
		}
		return err
	}
}
