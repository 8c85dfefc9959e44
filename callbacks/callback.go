package callbacks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/effective-security/mcpbridge/orchestrator"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/pkg/llmutils"
	"github.com/effective-security/xlog"
)

// ensure that the callbacks implement the correct interfaces
var (
	_ orchestrator.Callback = (*Noop)(nil)
	_ orchestrator.Callback = (*Printer)(nil)
	_ orchestrator.Callback = (*PackageLogger)(nil)
	_ orchestrator.Callback = (*Fanout)(nil)
)

// Mode defines the mode for callback printing
type Mode int

const (
	// ModeDefault prints the assistant and tool responses
	ModeDefault Mode = iota
	// ModeVerbose also prints model calls, tool requests and errors
	ModeVerbose
)

// Fanout is a callback handler that forwards the events to multiple callbacks.
type Fanout struct {
	callbacks []orchestrator.Callback
}

func NewFanout(callbacks ...orchestrator.Callback) *Fanout {
	return &Fanout{callbacks: callbacks}
}

func (l *Fanout) Add(callback orchestrator.Callback) {
	l.callbacks = append(l.callbacks, callback)
}

func (l *Fanout) OnTurnStart(ctx context.Context, input string) {
	for _, callback := range l.callbacks {
		callback.OnTurnStart(ctx, input)
	}
}

func (l *Fanout) OnTurnEnd(ctx context.Context, input string, result *orchestrator.TurnResult) {
	for _, callback := range l.callbacks {
		callback.OnTurnEnd(ctx, input, result)
	}
}

func (l *Fanout) OnTurnError(ctx context.Context, input string, err error) {
	for _, callback := range l.callbacks {
		callback.OnTurnError(ctx, input, err)
	}
}

func (l *Fanout) OnModelCallStart(ctx context.Context, model llms.Model, messages []llms.Message) {
	for _, callback := range l.callbacks {
		callback.OnModelCallStart(ctx, model, messages)
	}
}

func (l *Fanout) OnModelCallEnd(ctx context.Context, model llms.Model, resp *llms.ContentResponse) {
	for _, callback := range l.callbacks {
		callback.OnModelCallEnd(ctx, model, resp)
	}
}

func (l *Fanout) OnAssistantMessage(ctx context.Context, content string, followUp bool) {
	for _, callback := range l.callbacks {
		callback.OnAssistantMessage(ctx, content, followUp)
	}
}

func (l *Fanout) OnToolStart(ctx context.Context, req *orchestrator.ToolRequest) {
	for _, callback := range l.callbacks {
		callback.OnToolStart(ctx, req)
	}
}

func (l *Fanout) OnToolEnd(ctx context.Context, req *orchestrator.ToolRequest, output string) {
	for _, callback := range l.callbacks {
		callback.OnToolEnd(ctx, req, output)
	}
}

func (l *Fanout) OnToolError(ctx context.Context, req *orchestrator.ToolRequest, err error) {
	for _, callback := range l.callbacks {
		callback.OnToolError(ctx, req, err)
	}
}

func (l *Fanout) OnToolCallParseError(ctx context.Context, resp *llms.ContentResponse, err error) {
	for _, callback := range l.callbacks {
		callback.OnToolCallParseError(ctx, resp, err)
	}
}

// Noop does nothing.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (l *Noop) OnTurnStart(ctx context.Context, input string) {}
func (l *Noop) OnTurnEnd(ctx context.Context, input string, result *orchestrator.TurnResult) {
}
func (l *Noop) OnTurnError(ctx context.Context, input string, err error) {}
func (l *Noop) OnModelCallStart(ctx context.Context, model llms.Model, messages []llms.Message) {
}
func (l *Noop) OnModelCallEnd(ctx context.Context, model llms.Model, resp *llms.ContentResponse) {
}
func (l *Noop) OnAssistantMessage(ctx context.Context, content string, followUp bool) {}
func (l *Noop) OnToolStart(ctx context.Context, req *orchestrator.ToolRequest)          {}
func (l *Noop) OnToolEnd(ctx context.Context, req *orchestrator.ToolRequest, output string) {
}
func (l *Noop) OnToolError(ctx context.Context, req *orchestrator.ToolRequest, err error) {}
func (l *Noop) OnToolCallParseError(ctx context.Context, resp *llms.ContentResponse, err error) {
}

// Printer is a callback handler that prints the conversation to the Writer.
type Printer struct {
	Out  io.Writer
	Mode Mode

	lock sync.Mutex
}

func NewPrinter(out io.Writer, mode Mode) *Printer {
	return &Printer{Out: out, Mode: mode}
}

func (l *Printer) OnTurnStart(ctx context.Context, input string) {}

func (l *Printer) OnTurnEnd(ctx context.Context, input string, result *orchestrator.TurnResult) {
	if l.Mode != ModeVerbose {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Turn End: %d tool calls, %d messages\n", result.ToolCalls, result.Messages)
}

func (l *Printer) OnTurnError(ctx context.Context, input string, err error) {}

func (l *Printer) OnModelCallStart(ctx context.Context, model llms.Model, messages []llms.Message) {
	if l.Mode != ModeVerbose {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "LLM Call: %s model, %d messages\n", model.GetName(), len(messages))
}

func (l *Printer) OnModelCallEnd(ctx context.Context, model llms.Model, resp *llms.ContentResponse) {
	if l.Mode != ModeVerbose {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "LLM Call End: %s model, stop reason %s, %d tokens\n",
		model.GetName(), resp.StopReason, resp.Usage.TotalTokens())
}

func (l *Printer) OnAssistantMessage(ctx context.Context, content string, followUp bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if followUp {
		fmt.Fprintf(l.Out, "LLM: %s\n", content)
	} else {
		fmt.Fprintf(l.Out, "LLM Response: %s\n", content)
	}
}

func (l *Printer) OnToolStart(ctx context.Context, req *orchestrator.ToolRequest) {
	if l.Mode != ModeVerbose {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Start: %s\n", req.Name)
	fmt.Fprintf(l.Out, "Input: %s\n", llmutils.ToJSON(req.Input))
}

func (l *Printer) OnToolEnd(ctx context.Context, req *orchestrator.ToolRequest, output string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Response: %s\n", output)
}

func (l *Printer) OnToolError(ctx context.Context, req *orchestrator.ToolRequest, err error) {
	if l.Mode != ModeVerbose {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Error: %s: %s\n", req.Name, err.Error())
}

func (l *Printer) OnToolCallParseError(ctx context.Context, resp *llms.ContentResponse, err error) {
	if l.Mode != ModeVerbose {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Call Parse Error: %s\n", err.Error())
	fmt.Fprintf(l.Out, "Response: %s\n", resp.GetContent())
}

// maxLogged limits the content logged by PackageLogger
const maxLogged = 256

// PackageLogger is a callback handler that prints to the logger.
type PackageLogger struct {
	logger *xlog.PackageLogger
}

func NewPackageLogger(logger *xlog.PackageLogger) *PackageLogger {
	return &PackageLogger{logger: logger}
}

func (l *PackageLogger) OnTurnStart(ctx context.Context, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "turn_start",
		"input", llmutils.Truncate(input, maxLogged),
	)
}

func (l *PackageLogger) OnTurnEnd(ctx context.Context, input string, result *orchestrator.TurnResult) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "turn_end",
		"tool_calls", result.ToolCalls,
		"messages", result.Messages,
	)
}

func (l *PackageLogger) OnTurnError(ctx context.Context, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "turn_error",
		"input", input,
		"err", err.Error(),
	)
}

func (l *PackageLogger) OnModelCallStart(ctx context.Context, model llms.Model, messages []llms.Message) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "model_call_start",
		"model", model.GetName(),
		"messages", len(messages),
	)
}

func (l *PackageLogger) OnModelCallEnd(ctx context.Context, model llms.Model, resp *llms.ContentResponse) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "model_call_end",
		"model", model.GetName(),
		"stop_reason", resp.StopReason,
		"blocks", len(resp.Content),
	)
}

func (l *PackageLogger) OnAssistantMessage(ctx context.Context, content string, followUp bool) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "assistant_message",
		"follow_up", followUp,
		"content", llmutils.Truncate(content, maxLogged),
	)
}

func (l *PackageLogger) OnToolStart(ctx context.Context, req *orchestrator.ToolRequest) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_start",
		"tool", req.Name,
		"input", llmutils.ToJSON(req.Input),
	)
}

func (l *PackageLogger) OnToolEnd(ctx context.Context, req *orchestrator.ToolRequest, output string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_end",
		"tool", req.Name,
		"output", llmutils.Truncate(output, maxLogged),
	)
}

func (l *PackageLogger) OnToolError(ctx context.Context, req *orchestrator.ToolRequest, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "tool_error",
		"tool", req.Name,
		"err", err.Error(),
	)
}

func (l *PackageLogger) OnToolCallParseError(ctx context.Context, resp *llms.ContentResponse, err error) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_call_parse_error",
		"err", err.Error(),
		"response", resp.GetContent(),
	)
}
