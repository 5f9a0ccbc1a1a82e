package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvBaseURL   = "OLLAMA_API_BASE_URL"
	EnvTimeout   = "OLLAMA_MCP_TIMEOUT"
	EnvTransport = "OLLAMA_MCP_TRANSPORT"
	EnvAddr      = "OLLAMA_MCP_ADDR"
	EnvLogLevel  = "OLLAMA_MCP_LOG_LEVEL"
	EnvLogFormat = "OLLAMA_MCP_LOG_FORMAT"
	EnvCORS      = "OLLAMA_MCP_CORS_ORIGINS"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// FromEnv builds a partial Config from environment lookups.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		BaseURL:   getenv(EnvBaseURL),
		Timeout:   getenv(EnvTimeout),
		Transport: strings.ToLower(getenv(EnvTransport)),
		Addr:      getenv(EnvAddr),
		LogLevel:  strings.ToLower(getenv(EnvLogLevel)),
		LogFormat: strings.ToLower(getenv(EnvLogFormat)),
	}
	if origins := splitCSV(getenv(EnvCORS)); len(origins) > 0 {
		cfg.CORS.Enabled = true
		cfg.CORS.Origins = origins
	}
	return cfg
}

// splitCSV splits a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
