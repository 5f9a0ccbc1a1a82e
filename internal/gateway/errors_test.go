package gateway

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicates_ThroughWrapping(t *testing.T) {
	un := &UpstreamUnreachableError{Endpoint: "/tags", Err: errors.New("connection refused")}
	up := newUpstreamError("/chat", 500, "500 Internal Server Error", []byte(`{"error":"oom"}`))
	mal := &MalformedResponseError{Endpoint: "/show", Err: errors.New("bad")}

	if !IsUpstreamUnreachable(fmt.Errorf("call: %w", un)) || IsUpstreamUnreachable(up) {
		t.Fatalf("IsUpstreamUnreachable misclassified")
	}
	if !IsUpstreamError(fmt.Errorf("call: %w", up)) || IsUpstreamError(mal) {
		t.Fatalf("IsUpstreamError misclassified")
	}
	if !IsMalformedResponse(fmt.Errorf("call: %w", mal)) || IsMalformedResponse(un) {
		t.Fatalf("IsMalformedResponse misclassified")
	}
	if up.Message != "oom" || up.Error() != "ollama /chat: 500 Internal Server Error: oom" {
		t.Fatalf("unexpected upstream error: %q", up.Error())
	}
	if un.Error() != "ollama unreachable (/tags): connection refused" {
		t.Fatalf("unexpected unreachable error: %q", un.Error())
	}
}

func TestUpstreamError_EmptyBody(t *testing.T) {
	e := newUpstreamError("/pull", 502, "502 Bad Gateway", nil)
	if e.Error() != "ollama /pull: 502 Bad Gateway" {
		t.Fatalf("got %q", e.Error())
	}
}
