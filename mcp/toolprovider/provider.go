// Package toolprovider is the MCP tool provider served over SSE.
// Without options it exposes no tools, WithSampleTools registers add and echo.
package toolprovider

import (
	"context"
	"net/http"
	"strconv"

	"github.com/effective-security/xlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpbridge/mcp", "toolprovider")

// Default server identity
const (
	ServerName    = "mcpbridge-tools"
	ServerVersion = "v0.1.0"
)

type options struct {
	sampleTools bool
}

// Option configures the tool provider
type Option func(*options)

// WithSampleTools registers the add and echo tools
func WithSampleTools() Option {
	return func(o *options) {
		o.sampleTools = true
	}
}

// NewServer returns the MCP server with the configured tools
func NewServer(opts ...Option) *mcp.Server {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: ServerVersion}, nil)
	if o.sampleTools {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "add",
			Description: "Add two numbers and return the sum",
		}, Add)
		mcp.AddTool(server, &mcp.Tool{
			Name:        "echo",
			Description: "Echo the text back",
		}, Echo)
	}
	return server
}

// Handler returns the SSE handler serving the server on every request
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		logger.KV(xlog.DEBUG, "status", "sse_session", "remote", r.RemoteAddr)
		return server
	}, nil)
}

// AddInput is the input of the add tool
type AddInput struct {
	A float64 `json:"a" jsonschema:"the first number"`
	B float64 `json:"b" jsonschema:"the second number"`
}

// AddOutput is the output of the add tool
type AddOutput struct {
	Sum float64 `json:"sum" jsonschema:"the sum of a and b"`
}

// Add returns a+b
func Add(_ context.Context, _ *mcp.CallToolRequest, in AddInput) (*mcp.CallToolResult, AddOutput, error) {
	sum := in.A + in.B
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: strconv.FormatFloat(sum, 'f', -1, 64)},
		},
	}, AddOutput{Sum: sum}, nil
}

// EchoInput is the input of the echo tool
type EchoInput struct {
	Text string `json:"text" jsonschema:"the text to echo"`
}

// Echo returns the input text
func Echo(_ context.Context, _ *mcp.CallToolRequest, in EchoInput) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: in.Text},
		},
	}, nil, nil
}
