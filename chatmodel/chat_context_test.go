package chatmodel

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatContext_Basics(t *testing.T) {
	t.Parallel()
	c := NewChatContext("cid")
	require.NotNil(t, c)
	assert.Equal(t, "cid", c.GetChatID())
}

func TestNewChatContext_DefaultID(t *testing.T) {
	t.Parallel()
	c := NewChatContext("")
	require.NotNil(t, c)
	_, err := uuid.Parse(c.GetChatID())
	assert.NoError(t, err)
}

func TestContextPlumbing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	assert.Nil(t, GetChatContext(ctx))
	assert.Empty(t, GetChatID(ctx))
	_, err := MustChatID(ctx)
	assert.ErrorIs(t, err, ErrInvalidChatContext)

	c := NewChatContext("y")
	ctx = WithChatContext(ctx, c)
	assert.Equal(t, c, GetChatContext(ctx))
	assert.Equal(t, "y", GetChatID(ctx))

	id, err := MustChatID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "y", id)
}

func TestNewChatID_Unique(t *testing.T) {
	assert.NotEqual(t, NewChatID(), NewChatID())
}
