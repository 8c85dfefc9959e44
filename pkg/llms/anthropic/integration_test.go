package anthropic_test

import (
	"context"
	"os"
	"testing"

	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/pkg/llms/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests that require a real API key
// These tests are skipped when ANTHROPIC_API_KEY is not set

const (
	claudeSonnetModel = "claude-sonnet-4-5"
)

func checkAnthropicAPIKeyOrSkip(t *testing.T) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" || apiKey == "fakekey" {
		t.Skip("ANTHROPIC_API_KEY not set")
	}
}

func TestIntegrationToolUse(t *testing.T) {
	checkAnthropicAPIKeyOrSkip(t)

	llm, err := anthropic.New(anthropic.WithModel(claudeSonnetModel))
	require.NoError(t, err)

	tools := []llms.Tool{{
		Name:        "add",
		Description: "Add two numbers",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []any{"a", "b"},
		},
	}}

	resp, err := llm.GenerateContent(context.Background(),
		[]llms.Message{llms.UserMessage("Use the add tool to add 2 and 3.")},
		llms.WithTools(tools),
		llms.WithMaxTokens(512),
	)
	require.NoError(t, err)
	assert.True(t, resp.IsToolUse())
	calls := resp.ToolCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "add", calls[0].Name)
}
