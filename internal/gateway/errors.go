package gateway

import (
	"errors"
	"strings"

	"ollamamcp/internal/jsonv"
)

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 4096

// UpstreamUnreachableError reports that the backend could not be reached or
// did not answer before the timeout.
type UpstreamUnreachableError struct {
	Endpoint string
	Err      error
}

func (e *UpstreamUnreachableError) Error() string {
	return "ollama unreachable (" + e.Endpoint + "): " + e.Err.Error()
}

func (e *UpstreamUnreachableError) Unwrap() error { return e.Err }

// IsUpstreamUnreachable reports whether err is an UpstreamUnreachableError.
func IsUpstreamUnreachable(err error) bool {
	var u *UpstreamUnreachableError
	return errors.As(err, &u)
}

// UpstreamError reports a non-2xx response from the backend.
type UpstreamError struct {
	Endpoint string
	Code     int
	Status   string
	// Message is the backend's "error" field when present, else the raw body.
	Message string
}

func (e *UpstreamError) Error() string {
	msg := "ollama " + e.Endpoint + ": " + e.Status
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// StatusCode returns the HTTP status the backend answered with.
func (e *UpstreamError) StatusCode() int { return e.Code }

// IsUpstreamError reports whether err is an UpstreamError.
func IsUpstreamError(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}

func newUpstreamError(endpoint string, code int, status string, body []byte) *UpstreamError {
	msg := strings.TrimSpace(string(body))
	if v, err := jsonv.Parse(body); err == nil {
		if m := v.Lookup("error").String(""); m != "" {
			msg = m
		}
	}
	return &UpstreamError{Endpoint: endpoint, Code: code, Status: status, Message: msg}
}

// MalformedResponseError reports a 2xx response whose body is not JSON.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return "ollama " + e.Endpoint + ": malformed response: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsMalformedResponse reports whether err is a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var m *MalformedResponseError
	return errors.As(err, &m)
}
