package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replypilot/server/internal/assistant/model"
)

func sampleState(sessionID string) *model.ConversationState {
	s := model.NewConversationState(sessionID)
	s.OriginalEmail = "Hi Bob, please confirm the budget."
	s.Summary = "Alice asks Bob to confirm the budget."
	s.KeyInfo = &model.KeyInfo{SenderName: "Alice Kim", Subject: "Q3 budget"}
	s.AppendDraft("Hi Alice, confirmed.", "casual")
	s.AppendSummaryEntry("User said: 'email' -> AI classified intent as: 'process_new_email'")
	return s
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	r := NewMemorySessionRepository()
	ctx := context.Background()

	_, err := r.Load(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	in := sampleState("sess-1")
	require.NoError(t, r.Save(ctx, in))

	out, err := r.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Stored copy is independent of later mutations.
	in.Summary = "mutated after save"
	out2, err := r.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice asks Bob to confirm the budget.", out2.Summary)

	require.NoError(t, r.Delete(ctx, "sess-1"))
	_, err = r.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestMemoryRepositoryRejectsAnonymousState(t *testing.T) {
	r := NewMemorySessionRepository()
	assert.Error(t, r.Save(context.Background(), &model.ConversationState{}))
	assert.Error(t, r.Save(context.Background(), nil))
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedisSessionRepository(rdb, time.Hour)
	ctx := context.Background()

	_, err := r.Load(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	in := sampleState("sess-1")
	require.NoError(t, r.Save(ctx, in))

	out, err := r.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Saving refreshes the TTL.
	ttl := mr.TTL("session:sess-1:state")
	assert.Equal(t, time.Hour, ttl)

	require.NoError(t, r.Delete(ctx, "sess-1"))
	_, err = r.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestRedisRepositorySessionExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedisSessionRepository(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, sampleState("sess-1")))
	mr.FastForward(2 * time.Minute)

	_, err := r.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}
