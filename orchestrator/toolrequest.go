package orchestrator

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/pkg/llms"
)

var (
	// ErrToolCallParse is returned when a tool-use response carries no usable tool call.
	ErrToolCallParse = errors.New("malformed tool call")
	// ErrToolBudgetExceeded is returned when a turn requests more tools than allowed.
	ErrToolBudgetExceeded = errors.New("tool budget exceeded")
	// ErrEmptyInput is returned by Turn for blank input.
	ErrEmptyInput = errors.New("empty input")
)

// ToolRequest is a tool invocation requested by the model.
type ToolRequest struct {
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// DetectToolRequest returns the first tool call of a tool-use response.
//
// A response that did not stop for tool use yields false and no error,
// whatever blocks it carries. A tool-use response without a tool call,
// or with an unnamed or undecodable one, yields ErrToolCallParse.
func DetectToolRequest(resp *llms.ContentResponse) (*ToolRequest, bool, error) {
	if !resp.IsToolUse() {
		return nil, false, nil
	}

	calls := resp.ToolCalls()
	if len(calls) == 0 {
		return nil, false, errors.WithMessage(ErrToolCallParse, "no tool call in tool_use response")
	}
	call := calls[0]
	if call.Name == "" {
		return nil, false, errors.WithMessagef(ErrToolCallParse, "tool call %q has no name", call.ID)
	}
	input, err := call.Input()
	if err != nil {
		return nil, false, errors.WithSecondaryError(errors.WithMessage(ErrToolCallParse, err.Error()), err)
	}
	return &ToolRequest{
		ID:    call.ID,
		Name:  call.Name,
		Input: input,
	}, true, nil
}
