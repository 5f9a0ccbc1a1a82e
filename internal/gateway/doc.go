// Package gateway forwards tool invocations to a local Ollama server.
//
//   - gateway.go: Gateway, Config and the single-request HTTP helper.
//   - ops.go: Generate, Chat, ListModels, PullModel, ModelInfo.
//   - render.go: markdown rendering of POST /show responses.
//   - errors.go: UpstreamUnreachableError, UpstreamError, MalformedResponseError.
//   - metrics.go: Prometheus collectors for upstream calls.
//
// Every operation issues exactly one request on a client scoped to that call.
// Nothing is retried, cached or pooled. Missing response fields degrade to
// empty values instead of errors.
package gateway
