package registry

import "context"

// ToolHandler executes a tool with the arguments parsed from the MCP
// request. It returns the plain-text payload of the tool result; a
// returned error is rendered at the dispatch boundary as an
// "Error: <message>" text block and never reaches the serving loop.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)
