package tools

import (
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/pkg/llmutils"
)

// Descriptor describes a tool offered by the tool provider.
// Descriptors are immutable for the lifetime of a session.
type Descriptor struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema,omitempty" yaml:"inputSchema,omitempty"`
}

// Adapt maps the descriptors to the model tool declarations,
// preserving order. Descriptors are not validated.
func Adapt(list []Descriptor) []llms.Tool {
	res := make([]llms.Tool, len(list))
	for i, d := range list {
		res[i] = llms.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}
	}
	return res
}

type toolDescription struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"tools" yaml:"tools"`
}

// GetDescriptions returns YAML listing of the tool names and descriptions
func GetDescriptions(list ...Descriptor) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name,
			Description: tool.Description,
		})
	}
	return llmutils.ToYAML(d)
}
