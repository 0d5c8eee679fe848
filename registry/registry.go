package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/seforimlab/libsearch/index"
	"github.com/seforimlab/libsearch/search"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo
	Logger     *zap.Logger
}

// ServerInfo identifies this MCP server in the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Registry is the MCP tool boundary over the search agent. It owns the
// tool table and dispatches tools/call invocations.
type Registry struct {
	mu       sync.RWMutex
	handle   *index.Handle
	agent    *search.Agent
	config   Config
	logger   *zap.Logger
	tools    []mcp.Tool
	handlers map[string]ToolHandler
}

// New creates a Registry serving the built-in tools over agent. The
// handle is used only for health probes; all query traffic goes
// through the agent.
func New(handle *index.Handle, agent *search.Agent, cfg Config) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{
		handle:   handle,
		agent:    agent,
		config:   cfg,
		logger:   logger,
		handlers: make(map[string]ToolHandler),
	}
	r.registerBuiltins()
	return r
}

// RegisterLocal adds a tool with its execution handler. Registering an
// existing name replaces the previous definition.
func (r *Registry) RegisterLocal(tool mcp.Tool, handler ToolHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[tool.Name] = handler
	for i, existing := range r.tools {
		if existing.Name == tool.Name {
			r.tools[i] = tool
			return
		}
	}
	r.tools = append(r.tools, tool)
}

// Tools returns the registered tool definitions in registration order.
func (r *Registry) Tools() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mcp.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Execute runs a tool by name and returns the text payload of its
// result. Errors here are tool-level: the caller renders them as
// "Error: ..." text blocks.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return handler(ctx, args)
}

// HealthCheck reports whether the underlying index still answers a
// probe search.
func (r *Registry) HealthCheck(ctx context.Context) error {
	if !r.handle.Validate(ctx) {
		return errors.New("index validation failed")
	}
	return nil
}
