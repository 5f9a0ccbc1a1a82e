package httpapi

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// errorResponse is the JSON body for non-MCP failures.
type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(errorResponse{Error: msg, Code: status})
}
