package store_test

import (
	"context"
	"testing"

	"github.com/effective-security/mcpbridge/chatmodel"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryStore(t *testing.T) {
	st := store.NewMemoryStore()
	testStore(t, st)
}

func testStore(t *testing.T, st store.MessageStore) {
	msg1 := llms.UserMessage("Hello")
	msg2 := llms.AssistantMessage("Hi there!")

	ctx := context.Background()
	expErr := "invalid chat context"
	assert.EqualError(t, st.Reset(ctx), expErr)
	assert.EqualError(t, st.Add(ctx, msg1), expErr)
	_, err := st.Messages(ctx)
	assert.EqualError(t, err, expErr)

	ctx = chatmodel.WithChatContext(ctx, chatmodel.NewChatContext(""))

	require.NoError(t, st.Add(ctx, msg1))
	require.NoError(t, st.Add(ctx, msg2))

	messages := mustMessages(t, ctx, st)
	require.Len(t, messages, 2)
	assert.Equal(t, msg1, messages[0])
	assert.Equal(t, msg2, messages[1])

	// other chats are isolated
	ctx2 := chatmodel.WithChatContext(ctx, chatmodel.NewChatContext(""))
	assert.Empty(t, mustMessages(t, ctx2, st))
	require.NoError(t, st.Add(ctx2, msg1))
	assert.Len(t, mustMessages(t, ctx2, st), 1)
	assert.Len(t, mustMessages(t, ctx, st), 2)

	require.NoError(t, st.Reset(ctx))
	assert.Empty(t, mustMessages(t, ctx, st))
	assert.Len(t, mustMessages(t, ctx2, st), 1)
}

func mustMessages(t *testing.T, ctx context.Context, st store.MessageStore) []llms.Message {
	t.Helper()
	messages, err := st.Messages(ctx)
	require.NoError(t, err)
	return messages
}

func Test_MemoryStoreReturnsCopy(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("c1"))
	require.NoError(t, st.Add(ctx, llms.UserMessage("one")))

	msgs := mustMessages(t, ctx, st)
	msgs[0].Content = "changed"
	assert.Equal(t, "one", mustMessages(t, ctx, st)[0].Content)
}
