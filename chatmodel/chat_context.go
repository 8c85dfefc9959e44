package chatmodel

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"github.com/google/uuid"
)

// ErrInvalidChatContext is returned when the context carries no ChatContext
var ErrInvalidChatContext = errors.New("invalid chat context")

// ChatContext is the context for a conversation,
// it identifies the message history in the store.
type ChatContext interface {
	GetChatID() string
}

type chatContext struct {
	chatID string
}

func (c *chatContext) GetChatID() string {
	return c.chatID
}

// NewChatContext returns ChatContext, a new chat ID is generated if chatID is empty
func NewChatContext(chatID string) ChatContext {
	return &chatContext{
		chatID: values.StringsCoalesce(chatID, NewChatID()),
	}
}

type contextKey int

const (
	keyContext contextKey = iota
)

// WithChatContext returns a new context with ChatContext value
func WithChatContext(ctx context.Context, chatCtx ChatContext) context.Context {
	return context.WithValue(ctx, keyContext, chatCtx)
}

// GetChatContext retrieves the ChatContext from the context
func GetChatContext(ctx context.Context) ChatContext {
	if v, ok := ctx.Value(keyContext).(ChatContext); ok {
		return v
	}
	return nil
}

// GetChatID retrieves the chat ID from the provided context.
// If the context does not contain a ChatContext, it returns an empty string.
func GetChatID(ctx context.Context) string {
	if v, ok := ctx.Value(keyContext).(ChatContext); ok {
		return v.GetChatID()
	}
	return ""
}

// MustChatID returns the chat ID, or ErrInvalidChatContext
func MustChatID(ctx context.Context) (string, error) {
	id := GetChatID(ctx)
	if id == "" {
		return "", ErrInvalidChatContext
	}
	return id, nil
}

// NewChatID generates a new random chat ID.
func NewChatID() string {
	return uuid.NewString()
}
