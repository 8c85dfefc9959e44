package tools_test

import (
	"strings"
	"testing"

	"github.com/effective-security/mcpbridge/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapt(t *testing.T) {
	assert.Empty(t, tools.Adapt(nil))

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []any{"a", "b"},
	}
	list := []tools.Descriptor{
		{Name: "add", Description: "Add two numbers", InputSchema: schema},
		{Name: "echo", Description: "Echo the input"},
		{Name: "noop"},
	}

	got := tools.Adapt(list)
	require.Len(t, got, len(list))
	for i, d := range list {
		assert.Equal(t, d.Name, got[i].Name)
		assert.Equal(t, d.Description, got[i].Description)
		assert.Equal(t, d.InputSchema, got[i].InputSchema)
	}
	assert.Equal(t, []string{"a", "b"}, got[0].SchemaRequired())
	assert.Nil(t, got[1].InputSchema)
}

func TestGetDescriptions(t *testing.T) {
	s := tools.GetDescriptions(
		tools.Descriptor{Name: "add", Description: "Add two numbers"},
		tools.Descriptor{Name: "echo", Description: "Echo the input"},
	)
	assert.True(t, strings.HasPrefix(s, "tools:\n"))
	assert.Contains(t, s, "name: add\n")
	assert.Contains(t, s, "description: Echo the input\n")
	assert.Less(t, strings.Index(s, "add"), strings.Index(s, "echo"))
}
