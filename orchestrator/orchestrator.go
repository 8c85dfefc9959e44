package orchestrator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/chatmodel"
	"github.com/effective-security/mcpbridge/mcp/mcpclient"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/pkg/llmutils"
	"github.com/effective-security/mcpbridge/pkg/metricskey"
	"github.com/effective-security/mcpbridge/store"
	"github.com/effective-security/mcpbridge/tools"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
)

// ErrMissingModel is returned by New without a model.
var ErrMissingModel = errors.New("orchestrator: model is required")

// Placeholders stored as assistant content when the model returned no text.
const (
	PlaceholderToolCall   = "(calling tool %s)"
	PlaceholderNoResponse = "(no response)"
)

// Loop commands recognized by Run.
const (
	CommandExit    = "exit"
	CommandQuit    = "quit"
	CommandClear   = "clear"
	CommandTools   = "tools"
	CommandHistory = "history"
)

// TurnResult describes a completed, or partially completed, user turn.
type TurnResult struct {
	// Answer is the last assistant message appended by the turn.
	Answer string
	// ToolCalls is the number of tools successfully invoked.
	ToolCalls int
	// Messages is the size of the history when the turn ended.
	Messages int
}

// Orchestrator drives the conversation between the model and the tool provider.
type Orchestrator struct {
	model     llms.Model
	connector ToolConnector
	cfg       *Config
	store     store.MessageStore
	chat      chatmodel.ChatContext

	toolsOnce sync.Once
	tools     []llms.Tool
}

// New returns an Orchestrator for the model and the tool connector.
// The connector may be nil, the conversation is then tool-less.
func New(model llms.Model, connector ToolConnector, opts ...Option) (*Orchestrator, error) {
	if model == nil {
		return nil, ErrMissingModel
	}
	cfg := NewConfig(opts...)
	st := cfg.Store
	if st == nil {
		st = store.NewMemoryStore()
	}
	return &Orchestrator{
		model:     model,
		connector: connector,
		cfg:       cfg,
		store:     st,
		chat:      chatmodel.NewChatContext(cfg.ChatID),
	}, nil
}

// Model returns the model of the conversation.
func (o *Orchestrator) Model() llms.Model {
	return o.model
}

// ChatID returns the ID of the conversation.
func (o *Orchestrator) ChatID() string {
	return o.chat.GetChatID()
}

// Messages returns the conversation history.
func (o *Orchestrator) Messages(ctx context.Context) ([]llms.Message, error) {
	return o.store.Messages(o.withChat(ctx))
}

// Reset clears the conversation history, the next input gets the preamble again.
func (o *Orchestrator) Reset(ctx context.Context) error {
	return o.store.Reset(o.withChat(ctx))
}

// Tools returns the tools offered to the model, fetched once from the connector.
func (o *Orchestrator) Tools(ctx context.Context) []llms.Tool {
	o.toolsOnce.Do(func() {
		if o.connector == nil {
			return
		}
		list, err := o.connector.ListTools(ctx)
		if err != nil {
			logger.ContextKV(ctx, xlog.WARNING,
				"status", "tools_unavailable",
				"err", err.Error(),
			)
		}
		o.tools = tools.Adapt(list)
	})
	return o.tools
}

func (o *Orchestrator) withChat(ctx context.Context) context.Context {
	if chatmodel.GetChatContext(ctx) != nil {
		return ctx
	}
	return chatmodel.WithChatContext(ctx, o.chat)
}

// Turn processes one user input: the model is called until it answers
// without requesting a tool, every requested tool is invoked and its result
// folded back into the history.
//
// On error the messages appended so far are kept, and the conversation
// can continue with the next input.
func (o *Orchestrator) Turn(ctx context.Context, input string) (*TurnResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	ctx = o.withChat(ctx)
	modelName := o.model.GetName()
	started := time.Now()
	defer metricskey.PerfTurn.MeasureSince(started, modelName)

	cb := o.cfg.CallbackHandler
	if cb != nil {
		cb.OnTurnStart(ctx, input)
	}

	res, err := o.turn(ctx, input)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"model", modelName,
			"status", "turn_failed",
			"input", slices.StringUpto(input, 64),
			"tool_calls", res.ToolCalls,
			"err", err.Error(),
		)
		if cb != nil {
			cb.OnTurnError(ctx, input, err)
		}
		return res, err
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"model", modelName,
		"status", "turn_completed",
		"tool_calls", res.ToolCalls,
		"messages", res.Messages,
	)
	if cb != nil {
		cb.OnTurnEnd(ctx, input, res)
	}
	return res, nil
}

func (o *Orchestrator) turn(ctx context.Context, input string) (*TurnResult, error) {
	res := &TurnResult{}

	history, err := o.store.Messages(ctx)
	if err != nil {
		return res, errors.WithMessage(err, "failed to load history")
	}
	content := input
	if len(history) == 0 && o.cfg.Preamble != "" {
		content = fmt.Sprintf("%s\n\nUser request: %s\n\n", o.cfg.Preamble, input)
	}
	if err := o.append(ctx, &history, llms.UserMessage(content)); err != nil {
		return res, err
	}
	res.Messages = len(history)

	toolDefs := o.Tools(ctx)
	if len(toolDefs) > 0 && !o.model.GetProviderType().Supports(llms.CapabilityFunctionCalling) {
		return res, errors.Newf("model %s does not support function calling", o.model.GetName())
	}

	toolsLimit := values.NumbersCoalesce(o.cfg.MaxToolCalls, DefaultMaxToolCalls)
	temperature := o.cfg.Temperature
	followUp := false

	for {
		resp, err := o.generate(ctx, history, toolDefs, temperature)
		if err != nil {
			return res, err
		}

		req, ok := o.detect(ctx, resp)

		answer := resp.Text()
		if answer == "" {
			if ok {
				answer = fmt.Sprintf(PlaceholderToolCall, req.Name)
			} else {
				answer = PlaceholderNoResponse
			}
		}
		if err = o.append(ctx, &history, llms.AssistantMessage(answer)); err != nil {
			return res, err
		}
		res.Answer = answer
		res.Messages = len(history)
		if cb := o.cfg.CallbackHandler; cb != nil {
			cb.OnAssistantMessage(ctx, answer, followUp)
		}

		if !ok {
			return res, nil
		}

		if res.ToolCalls >= toolsLimit {
			metricskey.StatsToolBudgetExceeded.IncrCounter(1, o.model.GetName())
			return res, errors.WithMessagef(ErrToolBudgetExceeded, "%d tool calls in one turn", toolsLimit)
		}

		output, err := o.callTool(ctx, req)
		if err != nil {
			return res, err
		}
		res.ToolCalls++

		if err = o.append(ctx, &history, llms.UserMessage(o.cfg.ToolResultPrefix+output)); err != nil {
			return res, err
		}
		res.Messages = len(history)

		temperature = o.cfg.FollowUpTemperature
		followUp = true
	}
}

func (o *Orchestrator) append(ctx context.Context, history *[]llms.Message, msg llms.Message) error {
	if err := o.store.Add(ctx, msg); err != nil {
		return errors.WithMessage(err, "failed to store message")
	}
	*history = append(*history, msg)
	return nil
}

func (o *Orchestrator) generate(ctx context.Context, history []llms.Message, toolDefs []llms.Tool, temperature *float64) (*llms.ContentResponse, error) {
	modelName := o.model.GetName()
	cb := o.cfg.CallbackHandler
	if cb != nil {
		cb.OnModelCallStart(ctx, o.model, history)
	}

	opts := []llms.CallOption{
		llms.WithMaxTokens(values.NumbersCoalesce(o.cfg.MaxTokens, DefaultMaxTokens)),
	}
	if temperature != nil {
		opts = append(opts, llms.WithTemperature(*temperature))
	}
	if o.cfg.SystemPrompt != "" {
		opts = append(opts, llms.WithSystemPrompt(o.cfg.SystemPrompt))
	}
	if len(toolDefs) > 0 {
		opts = append(opts, llms.WithTools(toolDefs))
	}

	bytesSent := llmutils.CountMessagesSize(history)
	metricskey.StatsLLMMessagesSent.IncrCounter(float64(len(history)), modelName)
	metricskey.StatsLLMBytesSent.IncrCounter(float64(bytesSent), modelName)

	callCtx := ctx
	if o.cfg.ModelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.cfg.ModelTimeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := o.model.GenerateContent(callCtx, history, opts...)
	metricskey.PerfModelCall.MeasureSince(started, modelName)
	if err == nil && resp == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		metricskey.StatsModelCallsFailed.IncrCounter(1, modelName)
		return nil, errors.WithMessagef(err, "model %s", modelName)
	}

	bytesReceived := llmutils.CountResponseSize(resp)
	metricskey.StatsLLMBytesReceived.IncrCounter(float64(bytesReceived), modelName)
	tokensIn, tokensOut, tokensTotal := llmutils.CountTokens(resp)
	metricskey.StatsLLMInputTokens.IncrCounter(float64(tokensIn), modelName)
	metricskey.StatsLLMOutputTokens.IncrCounter(float64(tokensOut), modelName)
	metricskey.StatsLLMTotalTokens.IncrCounter(float64(tokensTotal), modelName)

	logger.ContextKV(ctx, xlog.DEBUG,
		"model", modelName,
		"status", "model_response",
		"stop_reason", resp.StopReason,
		"blocks", len(resp.Content),
		"messages", len(history),
		"bytes_sent", bytesSent,
		"bytes_received", bytesReceived,
	)

	if cb != nil {
		cb.OnModelCallEnd(ctx, o.model, resp)
	}
	return resp, nil
}

// detect returns the tool request of the response, parse errors are
// logged and treated as a final answer.
func (o *Orchestrator) detect(ctx context.Context, resp *llms.ContentResponse) (*ToolRequest, bool) {
	req, ok, err := DetectToolRequest(resp)
	if err != nil {
		metricskey.StatsToolCallParseErrors.IncrCounter(1, o.model.GetName())
		logger.ContextKV(ctx, xlog.WARNING,
			"model", o.model.GetName(),
			"status", "tool_call_parse_error",
			"err", err.Error(),
		)
		if cb := o.cfg.CallbackHandler; cb != nil {
			cb.OnToolCallParseError(ctx, resp, err)
		}
		return nil, false
	}
	return req, ok
}

func (o *Orchestrator) callTool(ctx context.Context, req *ToolRequest) (string, error) {
	if o.connector == nil {
		return "", errors.WithMessagef(mcpclient.ErrNotConnected, "tool %q", req.Name)
	}

	cb := o.cfg.CallbackHandler
	if cb != nil {
		cb.OnToolStart(ctx, req)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "calling_tool",
		"tool", req.Name,
		"input", llmutils.ToJSON(req.Input),
	)

	started := time.Now()
	result, err := o.connector.CallTool(ctx, req.Name, req.Input)
	metricskey.PerfToolCall.MeasureSince(started, req.Name)
	if err == nil && result == nil {
		err = errors.WithMessagef(mcpclient.ErrRemoteTool, "tool %q returned no result", req.Name)
	}
	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, req.Name)
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "tool_call_failed",
			"tool", req.Name,
			"err", err.Error(),
		)
		if cb != nil {
			cb.OnToolError(ctx, req, err)
		}
		return "", err
	}

	metricskey.StatsToolCallsSucceeded.IncrCounter(1, req.Name)
	if cb != nil {
		cb.OnToolEnd(ctx, req, result.Text)
	}
	return result.Text, nil
}

// Run reads user input line by line from r until EOF, an exit command,
// or the context is done. A failed turn is reported to w and the loop
// continues with the next input.
func (o *Orchestrator) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx = o.withChat(ctx)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(w, o.cfg.Prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(w)
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(l)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case CommandExit, CommandQuit:
			return nil
		case CommandClear:
			if err := o.Reset(ctx); err != nil {
				fmt.Fprintf(w, "Error: %s\n", err.Error())
			} else {
				fmt.Fprintln(w, "History cleared.")
			}
			continue
		case CommandTools:
			fmt.Fprint(w, describeTools(o.Tools(ctx)))
			continue
		case CommandHistory:
			history, err := o.Messages(ctx)
			if err != nil {
				fmt.Fprintf(w, "Error: %s\n", err.Error())
				continue
			}
			llmutils.PrintMessages(w, history)
			continue
		}

		if _, err := o.Turn(ctx, line); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(w, "Error: %s\n", err.Error())
		}
	}
}

func describeTools(list []llms.Tool) string {
	if len(list) == 0 {
		return "No tools available.\n"
	}
	descs := make([]tools.Descriptor, len(list))
	for i, t := range list {
		descs[i] = tools.Descriptor{Name: t.Name, Description: t.Description}
	}
	return tools.GetDescriptions(descs...)
}
