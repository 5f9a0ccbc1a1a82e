package gateway

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultBaseURL     = "http://localhost:11434/api"
	DefaultTimeout     = 300 * time.Second
	DefaultTemperature = 0.7
	defaultUserAgent   = "ollama-mcp"
)

// Config holds everything a Gateway needs. Zero values select the defaults.
type Config struct {
	// BaseURL of the Ollama API, including the /api prefix.
	BaseURL string
	// Timeout bounds each call end to end.
	Timeout   time.Duration
	UserAgent string
	// Logger receives one debug line per upstream call. Nil disables logging.
	Logger *zerolog.Logger
}

// Gateway translates operations into single HTTP calls against the backend.
// It holds no mutable state and is safe for concurrent use.
type Gateway struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	log       zerolog.Logger
}

// New constructs a Gateway from cfg, applying defaults.
func New(cfg Config) *Gateway {
	g := &Gateway{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		log:       zerolog.Nop(),
	}
	if g.baseURL == "" {
		g.baseURL = DefaultBaseURL
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	if g.userAgent == "" {
		g.userAgent = defaultUserAgent
	}
	if cfg.Logger != nil {
		g.log = *cfg.Logger
	}
	return g
}

// BaseURL returns the effective backend address.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Timeout returns the effective per-call timeout.
func (g *Gateway) Timeout() time.Duration { return g.timeout }

// newClient returns a client owned by a single call and its release func.
// Keep-alives are off so no connection outlives the call.
func (g *Gateway) newClient() (*http.Client, func()) {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: g.timeout,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   true,
	}
	// Timeout=0: the deadline travels on the request context.
	return &http.Client{Transport: tr, Timeout: 0}, tr.CloseIdleConnections
}

// do issues one request and returns the body of a 2xx response.
// payload is JSON-encoded when non-nil.
func (g *Gateway) do(ctx context.Context, method, endpoint string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		b, err := sonic.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)

	cli, release := g.newClient()
	defer release()

	start := time.Now()
	resp, err := cli.Do(req)
	if err != nil {
		observe(endpoint, 0, start)
		g.log.Debug().Str("method", method).Str("endpoint", endpoint).Dur("dur", time.Since(start)).Err(err).Msg("upstream unreachable")
		return nil, &UpstreamUnreachableError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	observe(endpoint, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		g.log.Debug().Str("method", method).Str("endpoint", endpoint).Int("status", resp.StatusCode).Dur("dur", time.Since(start)).Msg("upstream error")
		return nil, newUpstreamError(endpoint, resp.StatusCode, resp.Status, b)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		// the deadline can also expire while the body is still arriving
		return nil, &UpstreamUnreachableError{Endpoint: endpoint, Err: err}
	}
	g.log.Debug().Str("method", method).Str("endpoint", endpoint).Int("status", resp.StatusCode).Int("bytes", len(b)).Dur("dur", time.Since(start)).Msg("upstream ok")
	return b, nil
}
