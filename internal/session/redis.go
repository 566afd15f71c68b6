package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	stderrors "whatsapp-orderbot/internal/common/errors"
	"whatsapp-orderbot/internal/common/logger"
)

const redisKeyPrefix = "session:"

// RedisStore is the shared session backend. Expiry is delegated to Redis via
// the key TTL, so wizard state survives bot restarts and is visible to every
// replica.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

func (r *RedisStore) Get(ctx context.Context, sender string) (*PendingOrder, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+sender).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, stderrors.NewSessionLoadFailedError(sender, err)
	}

	var pending PendingOrder
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, fmt.Errorf("decode session for %s: %w", sender, err)
	}
	return &pending, nil
}

func (r *RedisStore) Put(ctx context.Context, sender string, pending *PendingOrder) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode session for %s: %w", sender, err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+sender, raw, r.ttl).Err(); err != nil {
		return stderrors.NewSessionSaveFailedError(sender, err)
	}

	r.logger.Debug("session saved", map[string]interface{}{
		"sender": sender,
		"step":   pending.Step,
	})
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sender string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+sender).Err(); err != nil {
		return fmt.Errorf("delete session for %s: %w", sender, err)
	}
	return nil
}
