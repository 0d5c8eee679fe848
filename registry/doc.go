// Package registry is the MCP boundary of the search service. It maps
// tool invocations (full_text_search, hello) onto the search agent and
// renders plain-text responses.
//
// The boundary is deliberately forgiving: a bad invocation (missing
// argument, unknown tool name) becomes an "Error: ..." text block in
// the tool result, and the serving loop keeps running. Only malformed
// JSON-RPC itself produces protocol-level errors.
//
// Two transports are provided: ServeStdio for line-delimited JSON-RPC
// over stdin/stdout, and Router for an HTTP surface exposing the MCP
// endpoint plus health and metrics.
package registry
