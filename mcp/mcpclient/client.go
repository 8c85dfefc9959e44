package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/tools"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpbridge/mcp", "mcpclient")

var (
	// ErrConnection is returned when the endpoint is unreachable or the handshake fails
	ErrConnection = errors.New("mcp: connection failed")
	// ErrNotConnected is returned when the connector is used before Connect succeeded
	ErrNotConnected = errors.New("mcp: not connected")
	// ErrRemoteTool is returned when the provider reports an error or a malformed result
	ErrRemoteTool = errors.New("mcp: remote tool error")
)

// wrapCause returns the sentinel with the cause in its message,
// the cause is kept as secondary error for details.
func wrapCause(sentinel, cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.WithSecondaryError(errors.WithMessagef(sentinel, "%s: %v", msg, cause), cause)
}

// DefaultEndpoint is the SSE endpoint of a local tool provider
const DefaultEndpoint = "http://localhost:5553/sse"

// TransportFactory creates the client transport for the endpoint
type TransportFactory func(ctx context.Context, endpoint string) (mcp.Transport, error)

// Result is the text returned by a tool call
type Result struct {
	Text string `json:"text"`
}

// Connector holds the MCP client session and the tools cached at connect time.
type Connector struct {
	client       *mcp.Client
	newTransport TransportFactory
	httpClient   *http.Client
	callTimeout  time.Duration

	lock    sync.RWMutex
	session *mcp.ClientSession
	tools   []tools.Descriptor
}

// Option configures Connector
type Option func(*Connector)

// WithTransportFactory replaces the SSE transport, used in tests
func WithTransportFactory(f TransportFactory) Option {
	return func(c *Connector) {
		c.newTransport = f
	}
}

// WithHTTPClient sets the HTTP client for the SSE transport
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connector) {
		c.httpClient = client
	}
}

// WithCallTimeout limits the duration of each tool call, zero means no limit
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Connector) {
		c.callTimeout = timeout
	}
}

// New returns a Connector that is not yet connected
func New(name, version string, opts ...Option) *Connector {
	c := &Connector{
		client: mcp.NewClient(&mcp.Implementation{Name: name, Version: version}, nil),
	}
	c.newTransport = c.sseTransport
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Connector) sseTransport(_ context.Context, endpoint string) (mcp.Transport, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid endpoint %q", endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Newf("unsupported scheme in endpoint %q", endpoint)
	}
	if u.Host == "" {
		return nil, errors.Newf("missing host in endpoint %q", endpoint)
	}
	return &mcp.SSEClientTransport{
		Endpoint:   endpoint,
		HTTPClient: c.httpClient,
	}, nil
}

// Connect establishes the transport, performs the initialize handshake
// and caches the tools offered by the provider.
func (c *Connector) Connect(ctx context.Context, endpoint string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.session != nil {
		return errors.WithMessage(ErrConnection, "already connected")
	}

	transport, err := c.newTransport(ctx, endpoint)
	if err != nil {
		return wrapCause(ErrConnection, err, "failed to create transport")
	}

	session, err := c.client.Connect(ctx, transport, nil)
	if err != nil {
		return wrapCause(ErrConnection, err, "failed to connect to %s", endpoint)
	}

	var list []tools.Descriptor
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			_ = session.Close()
			return wrapCause(ErrConnection, err, "failed to list tools")
		}
		list = append(list, toDescriptor(tool))
	}

	c.session = session
	c.tools = list

	logger.ContextKV(ctx, xlog.INFO,
		"status", "connected",
		"endpoint", endpoint,
		"tools", len(list))
	return nil
}

// Connected returns true when the session is established
func (c *Connector) Connected() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.session != nil
}

// Tools returns the cached tool descriptors, nil if not connected
func (c *Connector) Tools() []tools.Descriptor {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return slices.Clone(c.tools)
}

// ListTools returns the tools in provider order.
// Before Connect it returns an empty list with ErrNotConnected.
func (c *Connector) ListTools(_ context.Context) ([]tools.Descriptor, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.session == nil {
		return []tools.Descriptor{}, ErrNotConnected
	}
	return slices.Clone(c.tools), nil
}

// CallTool invokes the named tool and returns the first text content of the result.
func (c *Connector) CallTool(ctx context.Context, name string, input map[string]any) (*Result, error) {
	c.lock.RLock()
	session := c.session
	c.lock.RUnlock()

	if session == nil {
		return nil, ErrNotConnected
	}

	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	if input == nil {
		input = map[string]any{}
	}
	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: input,
	})
	if err != nil {
		return nil, wrapCause(ErrRemoteTool, err, "tool %q failed", name)
	}

	text, ok := firstText(res)
	if res.IsError {
		return nil, errors.WithMessagef(ErrRemoteTool, "tool %q: %s", name, values.StringsCoalesce(text, "reported an error"))
	}
	if !ok {
		return nil, errors.WithMessagef(ErrRemoteTool, "tool %q returned no text content", name)
	}

	return &Result{Text: text}, nil
}

// Close releases the session, it is safe to call more than once.
func (c *Connector) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	c.tools = nil

	logger.KV(xlog.DEBUG, "status", "closed")
	if err != nil {
		return errors.Wrap(err, "mcp: failed to close session")
	}
	return nil
}

func firstText(res *mcp.CallToolResult) (string, bool) {
	if res == nil {
		return "", false
	}
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			return strings.TrimSpace(tc.Text), true
		}
	}
	return "", false
}

func toDescriptor(tool *mcp.Tool) tools.Descriptor {
	if tool == nil {
		return tools.Descriptor{}
	}
	return tools.Descriptor{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: schemaMap(tool.InputSchema),
	}
}

// schemaMap returns the input schema as a generic JSON object
func schemaMap(schema any) map[string]any {
	switch s := schema.(type) {
	case nil:
		return nil
	case map[string]any:
		return s
	}

	js, err := json.Marshal(schema)
	if err != nil {
		logger.KV(xlog.WARNING, "reason", "marshal_schema", "err", err.Error())
		return nil
	}
	var m map[string]any
	if err = json.Unmarshal(js, &m); err != nil {
		logger.KV(xlog.WARNING, "reason", "unmarshal_schema", "err", err.Error())
		return nil
	}
	return m
}
