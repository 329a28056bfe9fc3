package model

import (
	"context"
	"errors"
)

// ErrToneCancelled signals that the user aborted the tone prompt.
var ErrToneCancelled = errors.New("tone prompt cancelled")

// Generator is the text-generation port. Every LLM-backed step goes through it.
// Implementations must treat each call as potentially slow and potentially
// failing; the graph performs no retries and converts failures into turn errors.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extractor is the content-extraction port. It returns the plain text of the
// document at path or a descriptive error wrapping the underlying cause.
type Extractor interface {
	ExtractPlainText(ctx context.Context, path string) (string, error)
}

// Store is the persistence port. It writes content under locator in the backend
// selected by target; bucket applies to remote targets and is sourced from
// configuration by the caller.
type Store interface {
	Store(ctx context.Context, content, locator string, target SaveTarget, bucket string) error
}

// TonePrompter asks the user which tone the reply should take. A blank answer
// means no preference. Implementations signal a user abort with an error
// wrapping ErrToneCancelled.
type TonePrompter interface {
	AskTone(ctx context.Context, info *KeyInfo, summary string) (string, error)
}
