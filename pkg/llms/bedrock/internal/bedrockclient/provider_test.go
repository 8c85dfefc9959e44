package bedrockclient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeInvoker) InvokeModel(_ context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestGetProvider(t *testing.T) {
	tests := []struct {
		name     string
		modelID  string
		expected string
	}{
		{
			name:     "Direct Anthropic model ID",
			modelID:  "anthropic.claude-3-sonnet-20240229-v1:0",
			expected: "anthropic",
		},
		{
			name:     "Inference Profile with US region",
			modelID:  "us.anthropic.claude-3-5-sonnet-20241022-v2:0",
			expected: "anthropic",
		},
		{
			name:     "Inference Profile with EU region",
			modelID:  "eu.anthropic.claude-3-haiku-20240307-v1:0",
			expected: "anthropic",
		},
		{
			name:     "Direct Amazon model ID",
			modelID:  "amazon.titan-text-premier-v1:0",
			expected: "amazon",
		},
		{
			name:     "Inference Profile with Meta",
			modelID:  "us.meta.llama3-2-11b-instruct-v1:0",
			expected: "meta",
		},
		{
			name:     "Single part model ID",
			modelID:  "anthropic",
			expected: "anthropic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getProvider(tt.modelID))
		})
	}
}

func TestProcessInputMessagesAnthropic(t *testing.T) {
	msgs, err := processInputMessagesAnthropic([]Message{
		{Role: llms.RoleUser, Content: "add 2 and 3"},
		{Role: llms.RoleAssistant, Content: "calling add"},
		{Role: llms.RoleUser, Content: "Tool result: 5"},
		{Role: llms.RoleUser, Content: "thanks"},
		{Role: llms.RoleAssistant, Content: ""},
	})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, AnthropicRoleUser, msgs[0].Role)
	assert.Equal(t, AnthropicRoleAssistant, msgs[1].Role)
	assert.Equal(t, AnthropicRoleUser, msgs[2].Role)
	assert.Len(t, msgs[2].Content, 2)

	_, err = processInputMessagesAnthropic([]Message{{Role: "system", Content: "x"}})
	assert.ErrorIs(t, err, llms.ErrUnexpectedRole)
}

func TestCreateCompletion(t *testing.T) {
	fake := &fakeInvoker{
		body: `{
			"id": "msg_bdrk_01",
			"type": "message",
			"role": "assistant",
			"content": [
				{"type": "text", "text": "Adding."},
				{"type": "tool_use", "id": "toolu_01", "name": "add", "input": {"a": 2, "b": 3}}
			],
			"stop_reason": "tool_use",
			"usage": {"input_tokens": 20, "output_tokens": 10}
		}`,
	}
	c := NewClient(fake)

	opts := llms.NewCallOptions("us.anthropic.claude-3-5-sonnet-20241022-v2:0",
		llms.WithTemperature(0.1),
		llms.WithTools([]llms.Tool{{
			Name:        "add",
			Description: "Add two numbers",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{"a": map[string]any{"type": "number"}},
				"required":   []any{"a"},
			},
		}}),
	)
	resp, err := c.CreateCompletion(context.Background(), opts.Model,
		[]Message{{Role: llms.RoleUser, Content: "add 2 and 3"}}, opts)
	require.NoError(t, err)

	assert.Equal(t, "msg_bdrk_01", resp.ID)
	assert.True(t, resp.IsToolUse())
	assert.Equal(t, "Adding.", resp.Text())
	calls := resp.ToolCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "add", calls[0].Name)
	assert.JSONEq(t, `{"a":2,"b":3}`, calls[0].Arguments)
	assert.Equal(t, int64(30), resp.Usage.TotalTokens())

	require.NotNil(t, fake.input)
	assert.Equal(t, "us.anthropic.claude-3-5-sonnet-20241022-v2:0", *fake.input.ModelId)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(fake.input.Body, &sent))
	assert.Equal(t, AnthropicLatestVersion, sent["anthropic_version"])
	assert.Equal(t, float64(2048), sent["max_tokens"])
	assert.Equal(t, 0.1, sent["temperature"])
	tools := sent["tools"].([]any)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, "add", tool["name"])
	assert.Equal(t, []any{"a"}, tool["input_schema"].(map[string]any)["required"])
}

func TestCreateCompletionKeepsToolSchema(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {"p": {"$ref": "#/$defs/Point"}},
		"required": ["p"],
		"additionalProperties": false,
		"$defs": {"Point": {"type": "object", "properties": {"x": {"type": "number"}}}}
	}`
	var inputSchema map[string]any
	require.NoError(t, json.Unmarshal([]byte(schema), &inputSchema))

	fake := &fakeInvoker{body: `{"id":"msg","type":"message","role":"assistant","content":[{"type":"text","text":"ok"}],"stop_reason":"end_turn","usage":{}}`}
	c := NewClient(fake)
	opts := llms.NewCallOptions("anthropic.claude",
		llms.WithTemperature(0),
		llms.WithTools([]llms.Tool{{Name: "plot", InputSchema: inputSchema}, {Name: "ping"}}),
	)
	_, err := c.CreateCompletion(context.Background(), opts.Model,
		[]Message{{Role: llms.RoleUser, Content: "plot"}}, opts)
	require.NoError(t, err)

	var sent struct {
		Temperature *float64 `json:"temperature"`
		Tools       []struct {
			Name        string          `json:"name"`
			InputSchema json.RawMessage `json:"input_schema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(fake.input.Body, &sent))
	require.NotNil(t, sent.Temperature)
	assert.Zero(t, *sent.Temperature)
	require.Len(t, sent.Tools, 2)
	assert.JSONEq(t, schema, string(sent.Tools[0].InputSchema))
	assert.JSONEq(t, `{"type":"object"}`, string(sent.Tools[1].InputSchema))
}

func TestCreateCompletionErrors(t *testing.T) {
	c := NewClient(&fakeInvoker{err: errors.New("throttled")})
	_, err := c.CreateCompletion(context.Background(), "anthropic.claude", nil, llms.CallOptions{})
	assert.EqualError(t, err, "bedrock: failed to invoke model: throttled")

	c = NewClient(&fakeInvoker{body: "not json"})
	_, err = c.CreateCompletion(context.Background(), "anthropic.claude", nil, llms.CallOptions{})
	assert.ErrorContains(t, err, "bedrock: failed to unmarshal response")

	_, err = c.CreateCompletion(context.Background(), "amazon.titan-text-lite-v1", nil, llms.CallOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}
