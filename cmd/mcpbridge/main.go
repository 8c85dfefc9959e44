// Command mcpbridge is an interactive chat that lets the model call
// the tools of an MCP server over SSE.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/callbacks"
	"github.com/effective-security/mcpbridge/config"
	"github.com/effective-security/mcpbridge/mcp/mcpclient"
	"github.com/effective-security/mcpbridge/orchestrator"
	"github.com/effective-security/mcpbridge/pkg/llmfactory"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/store"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpbridge", "cmd")

// ClientName is the MCP client name
const ClientName = "mcpbridge"

// Version is set at build time
var Version = "v0.1.0"

func main() {
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(os.Getenv(config.EnvConfigFile))
	if err != nil {
		return err
	}
	xlog.SetGlobalLogLevel(cfg.GetLogLevel())

	model, err := newModel(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Using model: %s\n", model.GetName())

	connector := mcpclient.New(ClientName, Version,
		mcpclient.WithCallTimeout(cfg.MCP.GetCallTimeout()),
	)
	defer func() { _ = connector.Close() }()

	if err = connectTools(ctx, cfg, connector, out); err != nil {
		return err
	}

	st, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	o, err := orchestrator.New(model, connector, chatOptions(cfg, st, out)...)
	if err != nil {
		return err
	}
	return o.Run(ctx, in, out)
}

func newModel(cfg *config.Config) (llms.Model, error) {
	if cfg.Model.ProvidersFile != "" {
		f, err := llmfactory.Load(cfg.Model.ProvidersFile)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to load providers")
		}
		return f.ModelByName(cfg.Model.Name)
	}
	return llmfactory.NewLLM(cfg.Model.ProviderConfig())
}

// connectTools opens the tool provider session, an unreachable provider
// is fatal only when mcp.required is set.
func connectTools(ctx context.Context, cfg *config.Config, connector *mcpclient.Connector, out io.Writer) error {
	endpoint := cfg.MCP.Endpoint
	err := connector.Connect(ctx, endpoint)
	if err != nil {
		if cfg.MCP.Required {
			return err
		}
		logger.KV(xlog.WARNING,
			"status", "tools_unavailable",
			"endpoint", endpoint,
			"err", err.Error(),
		)
		fmt.Fprintf(out, "MCP server at %s is not available, continuing without tools\n", endpoint)
		return nil
	}

	list := connector.Tools()
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name
	}
	fmt.Fprintf(out, "Connected to MCP server at %s\n", endpoint)
	fmt.Fprintf(out, "Available tools: %v\n", names)
	return nil
}

func newStore(ctx context.Context, cfg *config.Config) (store.MessageStore, func(), error) {
	if cfg.Store.RedisURL == "" {
		return store.NewMemoryStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Store.RedisURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid redis URL")
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errors.Wrap(err, "failed to connect to redis")
	}

	st := store.NewRedisStore(client, cfg.Store.Prefix, store.WithTTL(cfg.Store.GetTTL()))
	return st, func() { _ = client.Close() }, nil
}

func chatOptions(cfg *config.Config, st store.MessageStore, out io.Writer) []orchestrator.Option {
	opts := []orchestrator.Option{
		orchestrator.WithStore(st),
		orchestrator.WithMaxTokens(cfg.Chat.MaxTokens),
		orchestrator.WithMaxToolCalls(cfg.Chat.MaxToolCalls),
		orchestrator.WithSystemPrompt(cfg.Chat.SystemPrompt),
		orchestrator.WithModelTimeout(cfg.Model.GetTimeout()),
	}
	if cfg.Chat.Temperature != nil {
		opts = append(opts, orchestrator.WithTemperature(*cfg.Chat.Temperature))
	}
	if cfg.Chat.FollowUpTemperature != nil {
		opts = append(opts, orchestrator.WithFollowUpTemperature(*cfg.Chat.FollowUpTemperature))
	}
	if cfg.Store.ChatID != "" {
		opts = append(opts, orchestrator.WithChatID(cfg.Store.ChatID))
	}
	if cfg.Chat.Preamble != nil {
		opts = append(opts, orchestrator.WithPreamble(*cfg.Chat.Preamble))
	}

	mode := callbacks.ModeDefault
	if cfg.GetLogLevel() >= xlog.DEBUG {
		mode = callbacks.ModeVerbose
	}
	opts = append(opts, orchestrator.WithCallback(callbacks.NewFanout(
		callbacks.NewPrinter(out, mode),
		callbacks.NewPackageLogger(logger),
	)))
	return opts
}
