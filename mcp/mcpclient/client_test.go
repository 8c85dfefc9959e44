package mcpclient_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/mcp/mcpclient"
	"github.com/effective-security/mcpbridge/mcp/toolprovider"
	"github.com/effective-security/mcpbridge/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inMemory(t *testing.T, server *mcp.Server) mcpclient.TransportFactory {
	t.Helper()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(context.Background(), serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	return func(context.Context, string) (mcp.Transport, error) {
		return clientTransport, nil
	}
}

func testServer() *mcp.Server {
	server := toolprovider.NewServer(toolprovider.WithSampleTools())
	server.AddTool(&mcp.Tool{
		Name:        "fail",
		Description: "Always fails",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	}, func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "boom"}},
		}
		res.IsError = true
		return res, nil
	})
	server.AddTool(&mcp.Tool{
		Name:        "empty",
		Description: "Returns no content",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	}, func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{Content: []mcp.Content{}}, nil
	})
	return server
}

func TestNotConnected(t *testing.T) {
	c := mcpclient.New("test", "v0")
	assert.False(t, c.Connected())
	assert.Nil(t, c.Tools())

	list, err := c.ListTools(context.Background())
	assert.ErrorIs(t, err, mcpclient.ErrNotConnected)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = c.CallTool(context.Background(), "add", map[string]any{"a": 1})
	assert.ErrorIs(t, err, mcpclient.ErrNotConnected)

	assert.NoError(t, c.Close())
}

func TestConnectAndCall(t *testing.T) {
	ctx := context.Background()
	c := mcpclient.New("test", "v0", mcpclient.WithTransportFactory(inMemory(t, testServer())))
	require.NoError(t, c.Connect(ctx, "inmemory"))
	defer c.Close()

	assert.True(t, c.Connected())
	err := c.Connect(ctx, "inmemory")
	assert.ErrorIs(t, err, mcpclient.ErrConnection)

	list, err := c.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, list, c.Tools())

	idx := slices.IndexFunc(list, func(d tools.Descriptor) bool { return d.Name == "add" })
	require.GreaterOrEqual(t, idx, 0)
	d := list[idx]
	assert.Equal(t, "Add two numbers and return the sum", d.Description)
	assert.Equal(t, "object", d.InputSchema["type"])
	js, err := json.Marshal(d.InputSchema["required"])
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(js))

	res, err := c.CallTool(ctx, "add", map[string]any{"a": 2, "b": 3})
	require.NoError(t, err)
	assert.Equal(t, "5", res.Text)

	res, err = c.CallTool(ctx, "echo", map[string]any{"text": "  padded  "})
	require.NoError(t, err)
	assert.Equal(t, "padded", res.Text)

	_, err = c.CallTool(ctx, "fail", nil)
	assert.ErrorIs(t, err, mcpclient.ErrRemoteTool)
	assert.ErrorContains(t, err, "boom")

	_, err = c.CallTool(ctx, "empty", nil)
	assert.ErrorIs(t, err, mcpclient.ErrRemoteTool)
	assert.ErrorContains(t, err, "no text content")

	_, err = c.CallTool(ctx, "missing", nil)
	assert.ErrorIs(t, err, mcpclient.ErrRemoteTool)

	require.NoError(t, c.Close())
	assert.False(t, c.Connected())
	assert.NoError(t, c.Close())

	_, err = c.CallTool(ctx, "add", nil)
	assert.ErrorIs(t, err, mcpclient.ErrNotConnected)
}

type failingTransport struct{}

func (failingTransport) Connect(context.Context) (mcp.Connection, error) {
	return nil, errors.New("connect failed")
}

func TestConnectErrors(t *testing.T) {
	ctx := context.Background()

	c := mcpclient.New("test", "v0", mcpclient.WithTransportFactory(func(context.Context, string) (mcp.Transport, error) {
		return failingTransport{}, nil
	}))
	err := c.Connect(ctx, "http://localhost:1/sse")
	assert.ErrorIs(t, err, mcpclient.ErrConnection)
	assert.False(t, c.Connected())

	c = mcpclient.New("test", "v0", mcpclient.WithTransportFactory(func(context.Context, string) (mcp.Transport, error) {
		return nil, errors.New("bad transport")
	}))
	err = c.Connect(ctx, "x")
	assert.ErrorIs(t, err, mcpclient.ErrConnection)
	assert.ErrorContains(t, err, "bad transport")

	c = mcpclient.New("test", "v0")
	for _, endpoint := range []string{"ftp://localhost/sse", "http:///sse", "://bad"} {
		err = c.Connect(ctx, endpoint)
		assert.ErrorIs(t, err, mcpclient.ErrConnection, endpoint)
	}
}

func TestConnectSSE(t *testing.T) {
	srv := httptest.NewServer(toolprovider.Handler(toolprovider.NewServer(toolprovider.WithSampleTools())))
	defer srv.Close()

	ctx := context.Background()
	c := mcpclient.New("test", "v0", mcpclient.WithHTTPClient(srv.Client()))
	require.NoError(t, c.Connect(ctx, srv.URL+"/sse"))
	defer c.Close()

	res, err := c.CallTool(ctx, "add", map[string]any{"a": 2, "b": 3})
	require.NoError(t, err)
	assert.Equal(t, "5", res.Text)
}

func TestCallTimeout(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "slow", Version: "v0"}, nil)
	server.AddTool(&mcp.Tool{
		Name:        "slow",
		InputSchema: map[string]any{"type": "object"},
	}, func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	ctx := context.Background()
	c := mcpclient.New("test", "v0",
		mcpclient.WithTransportFactory(inMemory(t, server)),
		mcpclient.WithCallTimeout(50*time.Millisecond),
	)
	require.NoError(t, c.Connect(ctx, "inmemory"))
	defer c.Close()

	_, err := c.CallTool(ctx, "slow", nil)
	assert.ErrorIs(t, err, mcpclient.ErrRemoteTool)
	assert.True(t, errors.Is(err, mcpclient.ErrRemoteTool))
	assert.ErrorContains(t, err, `tool "slow"`)
}

func TestErrorsAreVisibleToBothPackages(t *testing.T) {
	ctx := context.Background()
	c := mcpclient.New("test", "v0")
	err := c.Connect(ctx, "ftp://localhost/sse")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, mcpclient.ErrConnection))
	assert.True(t, errors.Is(err, mcpclient.ErrConnection))
	assert.False(t, stderrors.Is(err, mcpclient.ErrRemoteTool))

	c = mcpclient.New("test", "v0", mcpclient.WithTransportFactory(func(context.Context, string) (mcp.Transport, error) {
		return failingTransport{}, nil
	}))
	err = c.Connect(ctx, "http://localhost:1/sse")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, mcpclient.ErrConnection))
	assert.ErrorContains(t, err, "failed to connect to http://localhost:1/sse")
	assert.ErrorContains(t, err, "connect failed")
}
