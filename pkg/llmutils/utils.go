package llmutils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/effective-security/mcpbridge/pkg/llms"
	"gopkg.in/yaml.v3"
)

func ToJSON(val any) string {
	js, _ := json.Marshal(val)
	return string(js)
}

func ToYAML(val any) string {
	js, _ := yaml.Marshal(val)
	return string(js)
}

// Truncate returns s limited to limit runes, with an ellipsis when cut.
// A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// PrintMessages is a debugging helper for the conversation history.
func PrintMessages(w io.Writer, msgs []llms.Message, filter ...llms.Role) {
	for _, mc := range msgs {
		if len(filter) > 0 && !containsRole(filter, mc.Role) {
			continue
		}
		fmt.Fprintf(w, "%s: ", strings.ToUpper(string(mc.Role)))
		fmt.Fprintln(w, mc.Content)
	}
}

func containsRole(roles []llms.Role, role llms.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CountMessagesSize counts the size of the content in the messages
func CountMessagesSize(msgs []llms.Message) uint64 {
	var size uint64
	for _, mc := range msgs {
		size += uint64(len(mc.Role))
		size += uint64(len(mc.Content))
	}
	return size
}

// CountResponseSize counts the size of the content in the content response
func CountResponseSize(resp *llms.ContentResponse) uint64 {
	if resp == nil {
		return 0
	}
	var size uint64
	for _, p := range resp.Content {
		switch pp := p.(type) {
		case llms.TextContent:
			size += uint64(len(pp.Text))
		case llms.ToolCall:
			size += uint64(len(pp.ID))
			size += uint64(len(pp.Name))
			size += uint64(len(pp.Arguments))
		}
	}
	return size
}

// CountTokens returns the token usage of the response
func CountTokens(resp *llms.ContentResponse) (in, out, total int64) {
	if resp == nil {
		return
	}
	return resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens()
}
