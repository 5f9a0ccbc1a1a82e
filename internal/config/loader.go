package config

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults used by WithDefaults.
const (
	DefaultBaseURL   = "http://localhost:11434/api"
	DefaultTimeout   = "300s"
	DefaultTransport = TransportStdio
	DefaultAddr      = "127.0.0.1:8000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Transports understood by the server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// CORS configures the optional HTTP transport CORS middleware.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	BaseURL   string `json:"base_url" yaml:"base_url" toml:"base_url"`
	Timeout   string `json:"timeout" yaml:"timeout" toml:"timeout"`
	Transport string `json:"transport" yaml:"transport" toml:"transport"`
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORS      CORS   `json:"cors" yaml:"cors" toml:"cors"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading ~ is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := sonic.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	if over.BaseURL != "" {
		base.BaseURL = over.BaseURL
	}
	if over.Timeout != "" {
		base.Timeout = over.Timeout
	}
	if over.Transport != "" {
		base.Transport = over.Transport
	}
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFormat != "" {
		base.LogFormat = over.LogFormat
	}
	if over.CORS.Enabled {
		base.CORS.Enabled = true
	}
	if len(over.CORS.Origins) > 0 {
		base.CORS.Origins = over.CORS.Origins
	}
	if len(over.CORS.Methods) > 0 {
		base.CORS.Methods = over.CORS.Methods
	}
	if len(over.CORS.Headers) > 0 {
		base.CORS.Headers = over.CORS.Headers
	}
	return base
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	return Merge(Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		Transport: DefaultTransport,
		Addr:      DefaultAddr,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		CORS: CORS{
			Origins: []string{"*"},
			Methods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			Headers: []string{"Content-Type", "Accept", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		},
	}, c)
}

// RequestTimeout parses Timeout. Bare integers are seconds.
func (c Config) RequestTimeout() (time.Duration, error) {
	s := strings.TrimSpace(c.Timeout)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > math.MaxInt64/int64(time.Second) || n < math.MinInt64/int64(time.Second) {
			return 0, fmt.Errorf("invalid timeout %q: out of range", c.Timeout)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Validate checks a config that has had defaults applied.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: need scheme and host", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: unsupported scheme %s", c.BaseURL, u.Scheme)
	}
	d, err := c.RequestTimeout()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", c.Transport, TransportStdio, TransportHTTP)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want console or json)", c.LogFormat)
	}
	return nil
}

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
