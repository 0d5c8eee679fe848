package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/seforimlab/libsearch/query"
	"github.com/seforimlab/libsearch/search"
)

// defaultSearchLimit bounds full_text_search when the caller does not
// ask for a specific result count.
const defaultSearchLimit = 10

func (r *Registry) registerBuiltins() {
	r.RegisterLocal(mcp.Tool{
		Name:        "full_text_search",
		Description: "Full text searching in the library.\n\n" + query.Instructions,
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The query to search for. See the tool description for the supported syntax.",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default 10)",
				},
			},
			"required": []string{"query"},
		},
	}, r.fullTextSearch)

	r.RegisterLocal(mcp.Tool{
		Name:        "hello",
		Description: "A simple test tool that returns a greeting",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "The name to greet",
				},
			},
			"required": []string{"name"},
		},
	}, r.hello)
}

func (r *Registry) fullTextSearch(ctx context.Context, args map[string]any) (string, error) {
	raw, _ := args["query"].(string)
	if raw == "" {
		return "", ErrMissingQuery
	}

	limit := defaultSearchLimit
	if v, ok := args["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	results := r.agent.Search(ctx, raw, limit)
	return renderResults(results), nil
}

func (r *Registry) hello(ctx context.Context, args map[string]any) (string, error) {
	name, _ := args["name"].(string)
	if name == "" {
		return "", ErrMissingName
	}
	return fmt.Sprintf("Hello, %s! This is a test message from the library search server.", name), nil
}

// renderResults formats assembled results as plain text blocks for the
// calling agent.
func renderResults(results []search.SearchResult) string {
	if len(results) == 0 {
		return "No results found"
	}

	blocks := make([]string, len(results))
	for i, res := range results {
		blocks[i] = fmt.Sprintf("Text: %s\nReference: %s", res.Text, res.Reference)
	}
	return strings.Join(blocks, "\n\n")
}
