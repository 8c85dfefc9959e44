package store

import (
	"context"
	"slices"
	"sync"

	"github.com/effective-security/mcpbridge/chatmodel"
	"github.com/effective-security/mcpbridge/pkg/llms"
)

type inMemory struct {
	mu      sync.RWMutex
	storage map[string][]llms.Message
}

// NewMemoryStore returns MessageStore that keeps the history in the process memory
func NewMemoryStore() MessageStore {
	return &inMemory{}
}

func (m *inMemory) Messages(ctx context.Context) ([]llms.Message, error) {
	chatID, err := chatmodel.MustChatID(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.storage == nil {
		return nil, nil
	}
	return slices.Clone(m.storage[chatID]), nil
}

func (m *inMemory) Add(ctx context.Context, msg llms.Message) error {
	chatID, err := chatmodel.MustChatID(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string][]llms.Message)
	}
	m.storage[chatID] = append(m.storage[chatID], msg)
	return nil
}

func (m *inMemory) Reset(ctx context.Context) error {
	chatID, err := chatmodel.MustChatID(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage != nil {
		delete(m.storage, chatID)
	}
	return nil
}
