package bedrockclient

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/pkg/llms"
)

// Ref: https://docs.aws.amazon.com/bedrock/latest/userguide/model-parameters-anthropic-claude-messages.html
// Also: https://docs.anthropic.com/claude/reference/messages_post

// anthropicTextGenerationInputContent is a single content block in the input.
type anthropicTextGenerationInputContent struct {
	// The type of the content. Required.
	Type string `json:"type"`
	// The text content. Required if type is "text"
	Text string `json:"text,omitempty"`
}

type anthropicTextGenerationInputMessage struct {
	// The role of the message. Required
	// One of: ["user", "assistant"]
	Role string `json:"role"`
	// The content of the message. Required
	Content []anthropicTextGenerationInputContent `json:"content"`
}

// anthropicTool represents a tool that can be used by the model,
// the input schema is sent as declared by the tool provider.
type anthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// anthropicTextGenerationInput is the input to the model.
type anthropicTextGenerationInput struct {
	// The version of the model to use. Required
	AnthropicVersion string `json:"anthropic_version"`
	// The maximum number of tokens to generate per result. Required
	MaxTokens int `json:"max_tokens"`
	// The system prompt to use. Optional
	System string `json:"system,omitempty"`
	// The messages to use. Required
	Messages []*anthropicTextGenerationInputMessage `json:"messages"`
	// The amount of randomness injected into the response. Optional, default = 1
	Temperature *float64 `json:"temperature,omitempty"`
	// Tools to use. Optional
	Tools []anthropicTool `json:"tools,omitempty"`
}

// anthropicTextGenerationOutputContent represents a content block in the output
type anthropicTextGenerationOutputContent struct {
	Type string `json:"type"`
	// Text content fields
	Text string `json:"text,omitempty"`
	// Tool use fields
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// anthropicTextGenerationOutput is the generated output.
type anthropicTextGenerationOutput struct {
	ID string `json:"id"`
	// Type of the content.
	// For messages, it is "message"
	Type string `json:"type"`
	// Conversational role of the generated message.
	// This will always be "assistant".
	Role string `json:"role"`
	// This is an array of content blocks, each of which has a type that determines its shape.
	// Can be "text" or "tool_use".
	Content []anthropicTextGenerationOutputContent `json:"content"`
	// The reason for the completion of the generation.
	// One of: ["end_turn", "max_tokens", "stop_sequence", "tool_use"]
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int64 `json:"input_tokens"`
		OutputTokens int64 `json:"output_tokens"`
	} `json:"usage"`
}

// The latest version of the model.
const (
	AnthropicLatestVersion = "bedrock-2023-05-31"
)

// Role attribute for the anthropic message.
const (
	AnthropicRoleUser      = "user"
	AnthropicRoleAssistant = "assistant"
)

// Type attribute for the anthropic message.
const (
	AnthropicMessageTypeText    = "text"
	AnthropicMessageTypeToolUse = "tool_use"
)

func createAnthropicCompletion(ctx context.Context,
	client InvokeModelAPI,
	modelID string,
	messages []Message,
	options llms.CallOptions,
) (*llms.ContentResponse, error) {
	inputContents, err := processInputMessagesAnthropic(messages)
	if err != nil {
		return nil, err
	}

	input := anthropicTextGenerationInput{
		AnthropicVersion: AnthropicLatestVersion,
		MaxTokens:        getMaxTokens(options.MaxTokens, 2048),
		System:           options.SystemPrompt,
		Messages:         inputContents,
		Temperature:      options.Temperature,
		Tools:            toAnthropicTools(options.Tools),
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "bedrock: failed to marshal request")
	}

	modelInput := &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Accept:      aws.String("*/*"),
		ContentType: aws.String("application/json"),
		Body:        body,
	}
	resp, err := client.InvokeModel(ctx, modelInput)
	if err != nil {
		return nil, errors.Wrap(err, "bedrock: failed to invoke model")
	}

	var output anthropicTextGenerationOutput
	err = json.Unmarshal(resp.Body, &output)
	if err != nil {
		return nil, errors.Wrap(err, "bedrock: failed to unmarshal response")
	}

	res := &llms.ContentResponse{
		ID:         output.ID,
		StopReason: output.StopReason,
		Content:    make([]llms.ContentPart, 0, len(output.Content)),
		Usage: llms.Usage{
			InputTokens:  output.Usage.InputTokens,
			OutputTokens: output.Usage.OutputTokens,
		},
	}

	for _, c := range output.Content {
		switch c.Type {
		case AnthropicMessageTypeText:
			res.Content = append(res.Content, llms.TextPart(c.Text))
		case AnthropicMessageTypeToolUse:
			res.Content = append(res.Content, llms.ToolCall{
				ID:        c.ID,
				Name:      c.Name,
				Arguments: string(c.Input),
			})
		}
	}

	return res, nil
}

func toAnthropicTools(tools []llms.Tool) []anthropicTool {
	if len(tools) == 0 {
		return nil
	}
	res := make([]anthropicTool, len(tools))
	for i, tool := range tools {
		res[i] = anthropicTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Schema(),
		}
	}
	return res
}

// process the input messages to anthropic supported input,
// consecutive messages of the same role are merged into one message.
func processInputMessagesAnthropic(messages []Message) ([]*anthropicTextGenerationInputMessage, error) {
	inputContents := make([]*anthropicTextGenerationInputMessage, 0, len(messages))
	var current *anthropicTextGenerationInputMessage
	for _, message := range messages {
		if message.Content == "" {
			continue
		}
		role, err := getAnthropicRole(message.Role)
		if err != nil {
			return nil, err
		}
		if current == nil || current.Role != role {
			current = &anthropicTextGenerationInputMessage{
				Role: role,
			}
			inputContents = append(inputContents, current)
		}
		current.Content = append(current.Content, anthropicTextGenerationInputContent{
			Type: AnthropicMessageTypeText,
			Text: message.Content,
		})
	}
	return inputContents, nil
}

// process the role of the message to anthropic supported role.
func getAnthropicRole(role llms.Role) (string, error) {
	switch role {
	case llms.RoleAssistant:
		return AnthropicRoleAssistant, nil
	case llms.RoleUser:
		return AnthropicRoleUser, nil
	default:
		return "", errors.WithMessagef(llms.ErrUnexpectedRole, "bedrock: role %q not supported", string(role))
	}
}
