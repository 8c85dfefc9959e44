package llms

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnexpectedRole is returned when a message role is of an unexpected type.
var ErrUnexpectedRole = errors.New("unexpected role")

// StopReasonToolUse is the stop reason reported when the model requests a tool.
const StopReasonToolUse = "tool_use"

// Role is the author of a conversation message.
type Role string

const (
	// RoleUser is a message sent by the user, including folded tool results.
	RoleUser Role = "user"
	// RoleAssistant is a message produced by the model.
	RoleAssistant Role = "assistant"
)

// Validate returns ErrUnexpectedRole for roles the model API does not accept.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant:
		return nil
	}
	return errors.WithMessagef(ErrUnexpectedRole, "role %q", string(r))
}

// Message is one entry of the conversation history.
// The history is append-only and resent on every model call.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage returns a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant-role message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", strings.ToUpper(string(m.Role)), m.Content)
}

// ContentPart is an interface all blocks of a model response implement.
type ContentPart interface {
	isPart()
}

// TextContent is a block with some text.
type TextContent struct {
	Text string `json:"text"`
}

// TextPart creates TextContent from a given string.
func TextPart(s string) TextContent {
	return TextContent{Text: s}
}

func (tc TextContent) String() string {
	return tc.Text
}

func (TextContent) isPart() {}

// ToolCall is a call to a tool requested by the model.
type ToolCall struct {
	// ID is the unique identifier of the tool call.
	ID string `json:"id"`
	// Name is the name of the tool to call.
	Name string `json:"name"`
	// Arguments is the JSON encoded tool input, as returned by the model.
	Arguments string `json:"arguments"`
}

func (tc ToolCall) String() string {
	return fmt.Sprintf("ToolCall: %s (%s), input: %s", tc.ID, tc.Name, tc.Arguments)
}

// Input decodes Arguments into the key-value input sent to the tool.
// Empty arguments decode to an empty map.
func (tc ToolCall) Input() (map[string]any, error) {
	input := map[string]any{}
	args := strings.TrimSpace(tc.Arguments)
	if args == "" || args == "null" {
		return input, nil
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return nil, errors.Wrapf(err, "invalid arguments for tool %q", tc.Name)
	}
	return input, nil
}

func (ToolCall) isPart() {}

// Usage is the token usage reported by the provider.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// TotalTokens returns input and output tokens combined.
func (u Usage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

// ContentResponse is the response returned by a GenerateContent call.
// Content preserves the order of blocks as returned by the provider.
type ContentResponse struct {
	ID         string        `json:"id,omitempty"`
	StopReason string        `json:"stop_reason"`
	Content    []ContentPart `json:"-"`
	Usage      Usage         `json:"usage"`
}

// Text returns the first text block, trimmed.
// It returns an empty string when the response has no text block.
func (r *ContentResponse) Text() string {
	if r == nil {
		return ""
	}
	for _, p := range r.Content {
		if tc, ok := p.(TextContent); ok {
			return strings.TrimSpace(tc.Text)
		}
	}
	return ""
}

// ToolCalls returns all tool call blocks in response order.
func (r *ContentResponse) ToolCalls() []ToolCall {
	if r == nil {
		return nil
	}
	var calls []ToolCall
	for _, p := range r.Content {
		if tc, ok := p.(ToolCall); ok {
			calls = append(calls, tc)
		}
	}
	return calls
}

// IsToolUse returns true if the provider stopped to request a tool.
func (r *ContentResponse) IsToolUse() bool {
	return r != nil && r.StopReason == StopReasonToolUse
}

// GetContent returns a printable rendering of all blocks.
func (r *ContentResponse) GetContent() string {
	if r == nil {
		return ""
	}
	var buf strings.Builder
	for _, p := range r.Content {
		switch typ := p.(type) {
		case TextContent:
			buf.WriteString(typ.Text)
			if !strings.HasSuffix(typ.Text, "\n") {
				buf.WriteString("\n")
			}
		case ToolCall:
			buf.WriteString("Tool Call: ")
			js, _ := json.Marshal(typ)
			buf.Write(js)
			buf.WriteString("\n")
		}
	}
	return buf.String()
}
