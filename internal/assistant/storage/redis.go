package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/replypilot/server/internal/assistant/model"
	errx "github.com/replypilot/server/internal/core/error"
	logx "github.com/replypilot/server/pkg/logger"
)

// RedisStore is the remote persistence backend: drafts live under
// bucket-prefixed keys, the same shape an object store would give them.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) key(bucket, locator string) string {
	return fmt.Sprintf("draft:%s:%s", bucket, locator)
}

func (s *RedisStore) Store(ctx context.Context, content, locator string, target model.SaveTarget, bucket string) error {
	if bucket == "" {
		return errx.WrapPersistence(fmt.Errorf("remote save requires a bucket"))
	}
	key := s.key(bucket, locator)
	if err := s.rdb.Set(ctx, key, content, 0).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store draft in redis")
		return errx.WrapPersistence(err)
	}
	logx.Debug().Str("key", key).Int("bytes", len(content)).Msg("draft written to remote store")
	return nil
}

var _ model.Store = (*RedisStore)(nil)
