package registry

import "errors"

// Tool-level errors. Their messages surface verbatim inside the
// "Error: ..." text blocks returned to the calling agent, so the
// capitalized wording is part of the tool contract.
var (
	ErrMissingQuery = errors.New("Missing query parameter")
	ErrMissingName  = errors.New("Missing name parameter")
	ErrUnknownTool  = errors.New("Unknown tool")
)

// JSON-RPC 2.0 error codes.
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)
