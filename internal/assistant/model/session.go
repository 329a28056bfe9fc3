package model

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned by repositories when no state exists for the id.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists conversation state between turns. The graph itself
// is stateless across invocations; front-ends load the state, run one turn, and
// save the mutated state back.
type SessionRepository interface {
	// Load retrieves the state for a session, or ErrSessionNotFound.
	Load(ctx context.Context, sessionID string) (*ConversationState, error)

	// Save stores the full state for the session it carries.
	Save(ctx context.Context, state *ConversationState) error

	// Delete removes the stored state for a session.
	Delete(ctx context.Context, sessionID string) error
}
