package model

// DefaultTone is used whenever the user has not asked for a specific tone.
const DefaultTone = "professional"

// summaryMaxEntries bounds the running conversation summary. The summary is a
// simple append-per-turn log used as classification context; without a cap it
// grows for the lifetime of a session. Short sessions never hit the cap, so
// observable behavior is unchanged for them.
const summaryMaxEntries = 50

// Draft is one generated or refined version of the reply text, tagged with the
// tone used to produce it. Immutable once appended to the history.
type Draft struct {
	Content string `json:"content"`
	Tone    string `json:"tone"`
}

// KeyInfo is the structured information extracted from an email. Every field is
// optional; the extraction model fills in what it can find.
type KeyInfo struct {
	SenderName      string `json:"sender_name,omitempty"`
	SenderContact   string `json:"sender_contact,omitempty"`
	ReceiverName    string `json:"receiver_name,omitempty"`
	ReceiverContact string `json:"receiver_contact,omitempty"`
	Subject         string `json:"subject,omitempty"`
}

// ConversationState is the single mutable record threaded through every step of
// the graph. One instance exists per session; each turn mutates it in place and
// the caller persists it between turns.
//
// Concurrency model: a state is owned exclusively by the one turn currently
// traversing the graph. The graph itself never retains it between invocations.
// Callers embedding the graph in a concurrent server must serialize turns per
// session (see repo.SessionRepository).
type ConversationState struct {
	// SessionID is immutable after creation and survives a reset.
	SessionID string `json:"session_id"`

	// UserInput is the raw input for the current turn only; the runner
	// overwrites it at the start of every turn.
	UserInput string `json:"user_input,omitempty"`

	// Intent is set exactly once per turn by the router and drives dispatch.
	Intent Intent `json:"intent,omitempty"`

	// OriginalEmail holds the normalized source text of the email being
	// answered. EmailPath is set only when it was loaded from a file.
	OriginalEmail string `json:"original_email,omitempty"`
	EmailPath     string `json:"email_path,omitempty"`

	KeyInfo *KeyInfo `json:"key_info,omitempty"`
	Summary string   `json:"summary,omitempty"`

	// DraftHistory is append-only within a session; index 0 is the first
	// draft and the last element is the current one. Only a session reset
	// empties it.
	DraftHistory []Draft `json:"draft_history,omitempty"`

	CurrentTone string `json:"current_tone,omitempty"`

	// UserFeedback is set by the router on a refine_draft turn and consumed
	// (cleared) by the refine step. Single use.
	UserFeedback string `json:"user_feedback,omitempty"`

	// ErrorMessage is set by any step on failure and always cleared by the
	// error-handling step before the turn ends. It never survives a turn.
	ErrorMessage string `json:"error_message,omitempty"`

	// SaveTarget is router-provided metadata from a save-location cue in the
	// user's message. SaveDraft never re-derives it.
	SaveTarget SaveTarget `json:"save_target,omitempty"`

	// ConversationSummary is the running "input -> classified intent" log fed
	// back to the classifier as context. Bounded to summaryMaxEntries.
	ConversationSummary []string `json:"conversation_summary,omitempty"`
}

// NewConversationState creates the initial state for a session.
func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID:   sessionID,
		CurrentTone: DefaultTone,
	}
}

// Reset rebuilds the state to its initial shape, preserving only the session id.
func (s *ConversationState) Reset() {
	*s = *NewConversationState(s.SessionID)
}

// CurrentDraft returns the latest draft, or nil when none exists.
func (s *ConversationState) CurrentDraft() *Draft {
	if len(s.DraftHistory) == 0 {
		return nil
	}
	return &s.DraftHistory[len(s.DraftHistory)-1]
}

// AppendDraft records a new draft as the current one.
func (s *ConversationState) AppendDraft(content, tone string) {
	s.DraftHistory = append(s.DraftHistory, Draft{Content: content, Tone: tone})
}

// AppendSummaryEntry appends one routing log entry, trimming the oldest entries
// once the cap is exceeded.
func (s *ConversationState) AppendSummaryEntry(entry string) {
	s.ConversationSummary = append(s.ConversationSummary, entry)
	if n := len(s.ConversationSummary); n > summaryMaxEntries {
		s.ConversationSummary = s.ConversationSummary[n-summaryMaxEntries:]
	}
}
