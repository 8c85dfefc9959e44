package main

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/effective-security/mcpbridge/mcp/mcpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	ctx := context.Background()

	t.Setenv(EnvSampleTools, "")
	srv := httptest.NewServer(newHandler())
	defer srv.Close()

	c := mcpclient.New("test", "v0")
	require.NoError(t, c.Connect(ctx, srv.URL+"/sse"))
	assert.Empty(t, c.Tools())
	require.NoError(t, c.Close())

	t.Setenv(EnvSampleTools, "true")
	srv2 := httptest.NewServer(newHandler())
	defer srv2.Close()

	c = mcpclient.New("test", "v0")
	require.NoError(t, c.Connect(ctx, srv2.URL+"/sse"))
	defer c.Close()
	assert.Len(t, c.Tools(), 2)
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, "127.0.0.1:0")
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}

	err := serve(context.Background(), "bad-address")
	assert.ErrorContains(t, err, "failed to serve on bad-address")
}
