package toolprovider_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/effective-security/mcpbridge/mcp/toolprovider"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func listTools(t *testing.T, cs *mcp.ClientSession) []*mcp.Tool {
	t.Helper()
	var list []*mcp.Tool
	for tool, err := range cs.Tools(context.Background(), nil) {
		require.NoError(t, err)
		list = append(list, tool)
	}
	return list
}

func TestStubServerHasNoTools(t *testing.T) {
	cs := connect(t, toolprovider.NewServer())
	assert.Empty(t, listTools(t, cs))
}

func TestSampleTools(t *testing.T) {
	cs := connect(t, toolprovider.NewServer(toolprovider.WithSampleTools()))

	list := listTools(t, cs)
	require.Len(t, list, 2)
	names := []string{list[0].Name, list[1].Name}
	assert.ElementsMatch(t, []string{"add", "echo"}, names)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "add",
		Arguments: map[string]any{"a": 2, "b": 3},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	assert.Equal(t, "5", res.Content[0].(*mcp.TextContent).Text)

	res, err = cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"text": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Content[0].(*mcp.TextContent).Text)
}

func TestAdd(t *testing.T) {
	res, out, err := toolprovider.Add(context.Background(), nil, toolprovider.AddInput{A: 1.5, B: 2})
	require.NoError(t, err)
	assert.Equal(t, 3.5, out.Sum)
	assert.Equal(t, "3.5", res.Content[0].(*mcp.TextContent).Text)
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(toolprovider.Handler(toolprovider.NewServer(toolprovider.WithSampleTools())))
	defer srv.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "test"}, nil)
	cs, err := client.Connect(context.Background(), &mcp.SSEClientTransport{Endpoint: srv.URL}, nil)
	require.NoError(t, err)
	defer cs.Close()

	assert.Len(t, listTools(t, cs), 2)
}
