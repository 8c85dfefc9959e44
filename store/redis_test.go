package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/effective-security/mcpbridge/chatmodel"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/mcpbridge/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rediscon "github.com/testcontainers/testcontainers-go/modules/redis"
)

func Test_RedisStore(t *testing.T) {
	if os.Getenv("MCPBRIDGE_REDIS_TESTS") == "" {
		t.Skip("set MCPBRIDGE_REDIS_TESTS=1 to run Redis tests in a container")
	}

	ctx := context.Background()
	redisContainer, err := rediscon.Run(ctx, "redis:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, redisContainer.Terminate(ctx))
	})

	state, err := redisContainer.State(ctx)
	require.NoError(t, err)
	require.True(t, state.Running)

	host, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)

	options, err := redis.ParseURL(host)
	require.NoError(t, err)

	client := redis.NewClient(options)
	require.NoError(t, client.Ping(ctx).Err(), "failed to connect to Redis")

	root := fmt.Sprintf("test-%d", time.Now().Unix())
	testStore(t, store.NewRedisStore(client, root, store.WithTTL(time.Minute)))
}

func Test_RedisStoreUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer client.Close()

	st := store.NewRedisStore(client, "test")
	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("c1"))

	_, err := st.Messages(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load messages from Redis")

	err = st.Add(ctx, llms.UserMessage("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store message in Redis")
}
