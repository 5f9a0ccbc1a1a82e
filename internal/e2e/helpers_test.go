package e2e

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"ollamamcp/internal/gateway"
	"ollamamcp/internal/httpapi"
	"ollamamcp/internal/mcpserver"
)

// fakeOllama serves canned bodies per path and records request bodies.
type fakeOllama struct {
	mu     sync.Mutex
	bodies map[string][]byte
	routes map[string]string
}

func newFakeOllama(t *testing.T, routes map[string]string) (*httptest.Server, *fakeOllama) {
	t.Helper()
	f := &fakeOllama{bodies: map[string][]byte{}, routes: routes}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies[r.URL.Path] = b
		f.mu.Unlock()
		body, ok := f.routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"model not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, f
}

func (f *fakeOllama) body(path string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

// newStack wires gateway, MCP server and HTTP mux against backendURL.
func newStack(t *testing.T, backendURL string) *httptest.Server {
	t.Helper()
	nop := zerolog.Nop()
	gw := gateway.New(gateway.Config{BaseURL: backendURL + "/api", Timeout: 5 * time.Second, Logger: &nop})
	s := mcpserver.New(gw, mcpserver.Options{Version: "test", Logger: &nop})
	srv := httptest.NewServer(httpapi.NewMux(server.NewStreamableHTTPServer(s)))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

// mcpClient speaks JSON-RPC to the streamable HTTP endpoint.
type mcpClient struct {
	t       *testing.T
	url     string
	session string
	nextID  int
}

func (c *mcpClient) post(payload []byte) (*http.Response, []byte) {
	c.t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if c.session != "" {
		req.Header.Set("Mcp-Session-Id", c.session)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

// call sends a request and returns the decoded response with the matching id.
func (c *mcpClient) call(method string, params any) map[string]any {
	c.t.Helper()
	c.nextID++
	payload, _ := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": c.nextID, "method": method, "params": params})
	resp, body := c.post(payload)
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("%s: status=%d body=%s", method, resp.StatusCode, body)
	}
	if sid := resp.Header.Get("Mcp-Session-Id"); sid != "" {
		c.session = sid
	}
	for _, msg := range decodeMessages(c.t, resp.Header.Get("Content-Type"), body) {
		if id, ok := msg["id"].(float64); ok && int(id) == c.nextID {
			return msg
		}
	}
	c.t.Fatalf("%s: no response with id %d in %s", method, c.nextID, body)
	return nil
}

func (c *mcpClient) notify(method string) {
	c.t.Helper()
	payload, _ := json.Marshal(map[string]any{"jsonrpc": "2.0", "method": method})
	resp, body := c.post(payload)
	if resp.StatusCode >= 300 {
		c.t.Fatalf("%s: status=%d body=%s", method, resp.StatusCode, body)
	}
}

// decodeMessages handles both a plain JSON reply and an SSE stream of "data:" lines.
func decodeMessages(t *testing.T, contentType string, body []byte) []map[string]any {
	t.Helper()
	var raw [][]byte
	if strings.HasPrefix(contentType, "text/event-stream") {
		sc := bufio.NewScanner(bytes.NewReader(body))
		sc.Buffer(make([]byte, 0, 64*1024), 4<<20)
		for sc.Scan() {
			if line := sc.Text(); strings.HasPrefix(line, "data:") {
				raw = append(raw, []byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))))
			}
		}
	} else {
		raw = append(raw, body)
	}
	out := make([]map[string]any, 0, len(raw))
	for _, b := range raw {
		var msg map[string]any
		if err := json.Unmarshal(b, &msg); err != nil {
			t.Fatalf("decode %q: %v", b, err)
		}
		out = append(out, msg)
	}
	return out
}

// connect runs the initialize handshake.
func connect(t *testing.T, srv *httptest.Server) *mcpClient {
	t.Helper()
	c := &mcpClient{t: t, url: srv.URL + httpapi.MCPPath}
	reply := c.call("initialize", map[string]any{
		"protocolVersion": "2025-03-26",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "e2e", "version": "0"},
	})
	if reply["error"] != nil {
		t.Fatalf("initialize: %v", reply["error"])
	}
	c.notify("notifications/initialized")
	return c
}

// resultJSON re-encodes a response's result for substring checks.
func resultJSON(t *testing.T, reply map[string]any) string {
	t.Helper()
	if reply["error"] != nil {
		t.Fatalf("rpc error: %v", reply["error"])
	}
	b, err := json.Marshal(reply["result"])
	if err != nil {
		t.Fatalf("encode result: %v", err)
	}
	return string(b)
}
