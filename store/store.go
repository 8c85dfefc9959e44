// Package store keeps the conversation history of a chat,
// keyed by the chat ID carried in the context.
package store

import (
	"context"

	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpbridge", "store")

// MessageStore is an append-only ordered message history.
type MessageStore interface {
	// Messages returns the history of the chat in the context
	Messages(ctx context.Context) ([]llms.Message, error)
	// Add appends the message
	Add(ctx context.Context, msg llms.Message) error
	// Reset removes the history
	Reset(ctx context.Context) error
}
