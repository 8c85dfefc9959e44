package orchestrator

import (
	"context"

	"github.com/effective-security/mcpbridge/mcp/mcpclient"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpbridge", "orchestrator")

//go:generate mockgen -destination=../mocks/mockllms/llm_mock.gen.go -package mockllms github.com/effective-security/mcpbridge/pkg/llms Model
//go:generate mockgen -source=interfaces.go -destination=../mocks/mockorchestrator/orchestrator_mock.gen.go -package mockorchestrator

// ToolConnector is the session with the tool provider.
type ToolConnector interface {
	// ListTools returns the tools of the provider in provider order.
	ListTools(ctx context.Context) ([]tools.Descriptor, error)
	// CallTool invokes the tool and returns its text result.
	CallTool(ctx context.Context, name string, input map[string]any) (*mcpclient.Result, error)
}

// Callback observes the conversation loop.
type Callback interface {
	OnTurnStart(ctx context.Context, input string)
	OnTurnEnd(ctx context.Context, input string, result *TurnResult)
	OnTurnError(ctx context.Context, input string, err error)

	OnModelCallStart(ctx context.Context, model llms.Model, messages []llms.Message)
	OnModelCallEnd(ctx context.Context, model llms.Model, resp *llms.ContentResponse)
	// OnAssistantMessage is called with the assistant message appended to the history,
	// followUp is true for responses to a tool result.
	OnAssistantMessage(ctx context.Context, content string, followUp bool)

	OnToolStart(ctx context.Context, req *ToolRequest)
	OnToolEnd(ctx context.Context, req *ToolRequest, output string)
	OnToolError(ctx context.Context, req *ToolRequest, err error)
	OnToolCallParseError(ctx context.Context, resp *llms.ContentResponse, err error)
}
