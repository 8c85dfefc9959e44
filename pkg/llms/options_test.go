package llms_test

import (
	"testing"

	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	tools := []llms.Tool{
		{
			Name:        "add",
			Description: "Add two numbers",
			InputSchema: map[string]any{"type": "object"},
		},
	}

	o := llms.NewCallOptions("claude",
		llms.WithSystemPrompt("be brief"),
		llms.WithMaxTokens(2048),
		llms.WithTools(tools),
	)
	assert.Equal(t, llms.CallOptions{
		Model:        "claude",
		SystemPrompt: "be brief",
		MaxTokens:    2048,
		Tools:        tools,
	}, o)
	assert.Nil(t, o.Temperature)

	o = llms.NewCallOptions("claude", llms.WithTemperature(0))
	require.NotNil(t, o.Temperature)
	assert.Zero(t, *o.Temperature)

	o = llms.NewCallOptions("claude", llms.WithTemperature(0.1))
	require.NotNil(t, o.Temperature)
	assert.Equal(t, 0.1, *o.Temperature)
}

func TestToolSchema(t *testing.T) {
	tool := llms.Tool{
		Name: "add",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []any{"a", "b", 1},
		},
	}
	assert.Equal(t, []string{"a", "b"}, tool.SchemaRequired())
	assert.Nil(t, tool.SchemaExtras())
	assert.Equal(t, tool.InputSchema, tool.Schema())

	tool.InputSchema["required"] = []string{"a"}
	assert.Equal(t, []string{"a"}, tool.SchemaRequired())

	tool.InputSchema["additionalProperties"] = false
	tool.InputSchema["$defs"] = map[string]any{"Point": map[string]any{"type": "object"}}
	assert.Equal(t, map[string]any{
		"additionalProperties": false,
		"$defs":                map[string]any{"Point": map[string]any{"type": "object"}},
	}, tool.SchemaExtras())

	empty := llms.Tool{Name: "ping"}
	assert.Nil(t, empty.SchemaRequired())
	assert.Nil(t, empty.SchemaExtras())
	assert.Equal(t, map[string]any{"type": "object"}, empty.Schema())
	assert.Nil(t, empty.InputSchema)
}
