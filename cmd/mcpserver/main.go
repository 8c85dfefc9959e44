// Command mcpserver serves the MCP tool provider over SSE.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/mcp/toolprovider"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpbridge", "mcpserver")

// Environment variables
const (
	EnvAddr        = "MCP_SERVER_ADDR"
	EnvSampleTools = "MCP_SAMPLE_TOOLS"
)

// DefaultAddr is the listen address of the SSE endpoint
const DefaultAddr = ":5553"

func main() {
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := serve(ctx, values.StringsCoalesce(os.Getenv(EnvAddr), DefaultAddr))
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func newHandler() http.Handler {
	var opts []toolprovider.Option
	if sample, _ := strconv.ParseBool(os.Getenv(EnvSampleTools)); sample {
		opts = append(opts, toolprovider.WithSampleTools())
	}

	mux := http.NewServeMux()
	mux.Handle("/sse", toolprovider.Handler(toolprovider.NewServer(opts...)))
	return mux
}

func serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.KV(xlog.NOTICE, "status", "listening", "addr", addr, "path", "/sse")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrapf(err, "failed to serve on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	logger.KV(xlog.NOTICE, "status", "stopped")
	return nil
}
