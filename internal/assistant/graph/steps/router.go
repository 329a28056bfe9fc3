package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/replypilot/server/internal/assistant/graph/parsers"
	"github.com/replypilot/server/internal/assistant/graph/prompts"
	"github.com/replypilot/server/internal/assistant/model"
	logx "github.com/replypilot/server/pkg/logger"
)

// NewRouterStep creates the entry node: it classifies the turn's user input
// into an intent and primes the state fields the chosen branch consumes.
//
// Failures here (generation backend down, undecodable classification) never
// abort the turn: the step records the problem in ErrorMessage, falls back to
// the unclear intent, and lets the dispatcher surface it through the error
// handler.
func NewRouterStep(classifier model.Generator) *compose.Lambda {
	return compose.InvokableLambda(routeTurn(classifier))
}

func routeTurn(classifier model.Generator) func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		if strings.TrimSpace(s.UserInput) == "" {
			// Nothing to classify; skip the generation call entirely.
			s.Intent = model.IntentUnclear
			return s, nil
		}

		prompt, err := prompts.RenderRouter(ctx, s)
		if err != nil {
			s.Intent = model.IntentUnclear
			s.ErrorMessage = fmt.Sprintf("Failed to classify intent: %v", err)
			return s, nil
		}

		raw, err := classifier.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Str("session_id", s.SessionID).Msg("intent classification call failed")
			s.Intent = model.IntentUnclear
			s.ErrorMessage = fmt.Sprintf("Failed to classify intent: %v", err)
			return s, nil
		}

		cls, err := parsers.ParseClassification(raw)
		if err != nil {
			logx.Error().Err(err).Str("session_id", s.SessionID).Msg("undecodable classification output")
			s.Intent = model.IntentUnclear
			s.ErrorMessage = "Failed to parse LLM response as JSON."
			return s, nil
		}

		s.Intent = cls.Intent
		if cls.SaveTarget != "" {
			s.SaveTarget = cls.SaveTarget
		}

		switch cls.Intent {
		case model.IntentProcessNewEmail:
			s.OriginalEmail = s.UserInput
		case model.IntentRefineDraft:
			s.UserFeedback = s.UserInput
		}

		s.AppendSummaryEntry(fmt.Sprintf("User said: '%s' -> AI classified intent as: '%s'", s.UserInput, cls.Intent))

		logx.Debug().
			Str("session_id", s.SessionID).
			Str("intent", cls.Intent.String()).
			Str("save_target", string(cls.SaveTarget)).
			Msg("turn classified")
		return s, nil
	}
}

// NewIntentCondition creates the dispatch condition for the router branch.
// An error recorded by the router wins over the intent so the message is
// displayed and cleared this turn rather than leaking into the next one.
// Intents outside the known enum fall through to the unclear handler.
func NewIntentCondition() func(context.Context, *model.ConversationState) (string, error) {
	return func(ctx context.Context, s *model.ConversationState) (string, error) {
		if s.ErrorMessage != "" {
			return NodeHandleError, nil
		}
		switch s.Intent {
		case model.IntentProcessNewEmail:
			return NodeParseInput, nil
		case model.IntentRefineDraft:
			return NodeRefineDraft, nil
		case model.IntentShowInfo:
			return NodeShowInfo, nil
		case model.IntentSaveDraft:
			return NodeSaveDraft, nil
		case model.IntentResetSession:
			return NodeResetSession, nil
		case model.IntentHandleIdleChat:
			return NodeHandleIdleChat, nil
		default:
			if !s.Intent.Known() {
				logx.Warn().Str("intent", s.Intent.String()).Msg("classifier produced an intent outside the enum")
			}
			return NodeHandleUnclear, nil
		}
	}
}

// NewErrorCheckCondition creates the per-step condition that short-circuits to
// the error handler when the previous step recorded a failure, and continues to
// next otherwise. next may be compose.END.
func NewErrorCheckCondition(next string) func(context.Context, *model.ConversationState) (string, error) {
	return func(ctx context.Context, s *model.ConversationState) (string, error) {
		if s.ErrorMessage != "" {
			return NodeHandleError, nil
		}
		return next, nil
	}
}
