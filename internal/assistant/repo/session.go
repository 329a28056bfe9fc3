// Package repo persists conversation state between turns. The graph itself is
// pure with respect to the supplied state; these repositories are how the
// front-ends hold a session across requests.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/replypilot/server/internal/assistant/model"
	errx "github.com/replypilot/server/internal/core/error"
	logx "github.com/replypilot/server/pkg/logger"
)

// RedisSessionRepository stores each session's full state as one JSON blob,
// touching the TTL on every save so active sessions stay alive.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

func (r *RedisSessionRepository) Load(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	key := r.sessionKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, model.ErrSessionNotFound
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session state from redis")
		return nil, errx.WrapPersistence(err)
	}

	var state model.ConversationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to unmarshal session state")
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &state, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, state *model.ConversationState) error {
	if state == nil || state.SessionID == "" {
		return fmt.Errorf("state must carry a session id")
	}

	b, err := json.Marshal(state)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", state.SessionID).Msg("failed to marshal session state")
		return fmt.Errorf("marshal session state: %w", err)
	}

	key := r.sessionKey(state.SessionID)
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session state to redis")
		return errx.WrapPersistence(err)
	}
	return nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session state from redis")
		return errx.WrapPersistence(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
