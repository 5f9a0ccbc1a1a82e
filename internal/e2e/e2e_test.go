package e2e

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestE2E_GenerateOverHTTP(t *testing.T) {
	backend, fake := newFakeOllama(t, map[string]string{
		"/api/generate": `{"model":"llama3","response":"Hi there","done":true}`,
	})
	srv := newStack(t, backend.URL)
	c := connect(t, srv)

	got := resultJSON(t, c.call("tools/call", map[string]any{
		"name":      "generate",
		"arguments": map[string]any{"model": "llama3", "prompt": "Say hi"},
	}))
	if !strings.Contains(got, "Hi there") {
		t.Fatalf("unexpected result: %s", got)
	}

	var sent map[string]any
	if err := json.Unmarshal(fake.body("/api/generate"), &sent); err != nil {
		t.Fatalf("backend body: %v", err)
	}
	if sent["model"] != "llama3" || sent["prompt"] != "Say hi" || sent["stream"] != false {
		t.Fatalf("unexpected upstream body: %v", sent)
	}
	opts, _ := sent["options"].(map[string]any)
	if opts["temperature"] != 0.7 {
		t.Fatalf("default temperature not applied: %v", sent["options"])
	}
}

func TestE2E_ChatAndListModels(t *testing.T) {
	backend, _ := newFakeOllama(t, map[string]string{
		"/api/chat": `{"message":{"role":"assistant","content":"Paris"}}`,
		"/api/tags": `{"models":[{"name":"llama3:latest","size":1}]}`,
	})
	c := connect(t, newStack(t, backend.URL))

	got := resultJSON(t, c.call("tools/call", map[string]any{
		"name": "chat",
		"arguments": map[string]any{
			"model":    "llama3",
			"messages": []any{map[string]any{"role": "user", "content": "Capital of France?"}},
		},
	}))
	if !strings.Contains(got, "Paris") {
		t.Fatalf("chat result: %s", got)
	}

	got = resultJSON(t, c.call("tools/call", map[string]any{"name": "list_models", "arguments": map[string]any{}}))
	if !strings.Contains(got, "llama3:latest") {
		t.Fatalf("list_models result: %s", got)
	}
}

func TestE2E_ToolErrorSurfacesAsResult(t *testing.T) {
	backend, _ := newFakeOllama(t, map[string]string{})
	c := connect(t, newStack(t, backend.URL))

	reply := c.call("tools/call", map[string]any{
		"name":      "pull_model",
		"arguments": map[string]any{"model": "nope"},
	})
	got := resultJSON(t, reply)
	if !strings.Contains(got, `"isError":true`) || !strings.Contains(got, "Error executing tool pull_model") {
		t.Fatalf("expected error result, got %s", got)
	}
}

func TestE2E_ReadModelResource(t *testing.T) {
	backend, fake := newFakeOllama(t, map[string]string{
		"/api/show": `{"modelfile":"FROM llama3","details":{"family":"llama","parameter_size":"8B"}}`,
	})
	c := connect(t, newStack(t, backend.URL))

	got := resultJSON(t, c.call("resources/read", map[string]any{"uri": "model://llama3"}))
	for _, want := range []string{"# Model: llama3", "## Modelfile", "FROM llama3", "## Details", "- family: llama"} {
		if !strings.Contains(got, want) {
			t.Fatalf("resource missing %q: %s", want, got)
		}
	}
	if !strings.Contains(string(fake.body("/api/show")), `"llama3"`) {
		t.Fatalf("show body: %s", fake.body("/api/show"))
	}
}

func TestE2E_HealthAndMetrics(t *testing.T) {
	backend, _ := newFakeOllama(t, map[string]string{"/api/generate": `{"response":"x"}`})
	srv := newStack(t, backend.URL)
	c := connect(t, srv)
	resultJSON(t, c.call("tools/call", map[string]any{
		"name":      "generate",
		"arguments": map[string]any{"model": "m", "prompt": "p"},
	}))

	resp, body := httpGet(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz: %d %q", resp.StatusCode, body)
	}
	resp, body = httpGet(t, srv.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status %d", resp.StatusCode)
	}
	for _, name := range []string{"ollama_mcp_upstream_requests_total", "ollama_mcp_tool_calls_total", "ollama_mcp_http_requests_total"} {
		if !strings.Contains(string(body), name) {
			t.Fatalf("metrics missing %s", name)
		}
	}
}
