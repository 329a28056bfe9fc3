package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/replypilot/server/internal/assistant/model"
)

// MemorySessionRepository keeps session state in process memory. Used by the
// shell and by the HTTP service when no Redis is configured. State is stored as
// JSON so callers never alias the stored copy.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string][]byte)}
}

func (r *MemorySessionRepository) Load(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	r.mu.RLock()
	raw, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	var state model.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &state, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, state *model.ConversationState) error {
	if state == nil || state.SessionID == "" {
		return fmt.Errorf("state must carry a session id")
	}

	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	r.mu.Lock()
	r.sessions[state.SessionID] = b
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
