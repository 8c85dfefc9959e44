package store

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/chatmodel"
	"github.com/effective-security/mcpbridge/pkg/llms"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// The redis store keeps the transcript of each chat as a Redis list,
// so a conversation can be inspected or resumed by another process.
// The keys namespace is organized as follows:
// - `/<prefix>/chatstore/messages/<chatID>` for storing chat messages

type redisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis store
type RedisOption func(*redisStore)

// WithTTL sets the expiration of the chat transcript,
// refreshed on every Add. Zero means no expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *redisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore returns MessageStore backed by Redis
func NewRedisStore(client redis.UniversalClient, prefix string, opts ...RedisOption) MessageStore {
	s := &redisStore{
		client: client,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (m *redisStore) getRedisMessagesKey(chatID string) string {
	return path.Join(m.prefix, "chatstore", "messages", chatID)
}

func (m *redisStore) Messages(ctx context.Context) ([]llms.Message, error) {
	chatID, err := chatmodel.MustChatID(ctx)
	if err != nil {
		return nil, err
	}

	data, err := m.client.LRange(ctx, m.getRedisMessagesKey(chatID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load messages from Redis")
	}

	messages := make([]llms.Message, 0, len(data))
	for _, item := range data {
		var msg llms.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal message", "err", err.Error())
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (m *redisStore) Add(ctx context.Context, msg llms.Message) error {
	chatID, err := chatmodel.MustChatID(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal message")
	}

	key := m.getRedisMessagesKey(chatID)
	pipe := m.client.Pipeline()
	pipe.RPush(ctx, key, data)
	if m.ttl > 0 {
		pipe.Expire(ctx, key, m.ttl)
	}
	_, err = pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to store message in Redis")
	}
	return nil
}

func (m *redisStore) Reset(ctx context.Context) error {
	chatID, err := chatmodel.MustChatID(ctx)
	if err != nil {
		return err
	}

	err = m.client.Del(ctx, m.getRedisMessagesKey(chatID)).Err()
	if err != nil {
		return errors.Wrap(err, "failed to reset chat in Redis")
	}
	return nil
}
