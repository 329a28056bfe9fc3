package model

// Intent is the classified category of a user turn. The set is fixed at build
// time; the dispatcher routes any value outside it to the unclear handler, so
// the type deliberately keeps the raw string the classifier produced.
type Intent string

const (
	IntentProcessNewEmail Intent = "process_new_email"
	IntentRefineDraft     Intent = "refine_draft"
	IntentShowInfo        Intent = "show_info"
	IntentSaveDraft       Intent = "save_draft"
	IntentResetSession    Intent = "reset_session"
	IntentHandleIdleChat  Intent = "handle_idle_chat"
	IntentUnclear         Intent = "unclear"
)

// KnownIntents lists every intent the classifier may legally return, in the
// order presented to the model.
func KnownIntents() []Intent {
	return []Intent{
		IntentProcessNewEmail,
		IntentRefineDraft,
		IntentShowInfo,
		IntentSaveDraft,
		IntentResetSession,
		IntentHandleIdleChat,
		IntentUnclear,
	}
}

// Known reports whether the intent belongs to the fixed enum.
func (i Intent) Known() bool {
	switch i {
	case IntentProcessNewEmail, IntentRefineDraft, IntentShowInfo,
		IntentSaveDraft, IntentResetSession, IntentHandleIdleChat, IntentUnclear:
		return true
	}
	return false
}

func (i Intent) String() string {
	return string(i)
}

// SaveTarget selects the persistence backend for a saved draft.
type SaveTarget string

const (
	SaveTargetLocal  SaveTarget = "local"
	SaveTargetRemote SaveTarget = "remote"
)

// Known reports whether the target is one the store can dispatch on.
func (t SaveTarget) Known() bool {
	return t == SaveTargetLocal || t == SaveTargetRemote
}

// Classification is the structured output of the routing step: the intent plus
// optional save-location metadata detected in the same utterance.
type Classification struct {
	Intent     Intent     `json:"intent"`
	SaveTarget SaveTarget `json:"save_target,omitempty"`
}
