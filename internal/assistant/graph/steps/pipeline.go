package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/replypilot/server/internal/assistant/graph/parsers"
	"github.com/replypilot/server/internal/assistant/graph/prompts"
	"github.com/replypilot/server/internal/assistant/model"
	"github.com/replypilot/server/internal/ui"
	logx "github.com/replypilot/server/pkg/logger"
)

// NewExtractAndSummarizeStep creates the node that pulls key info and a
// one-paragraph summary out of the email via the drafting model.
func NewExtractAndSummarizeStep(drafter model.Generator) *compose.Lambda {
	return compose.InvokableLambda(extractAndSummarize(drafter))
}

func extractAndSummarize(drafter model.Generator) func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		if strings.TrimSpace(s.OriginalEmail) == "" {
			s.ErrorMessage = "No email content to process."
			return s, nil
		}

		prompt, err := prompts.RenderExtract(ctx, s.OriginalEmail)
		if err != nil {
			s.ErrorMessage = fmt.Sprintf("An unexpected error occurred: %v", err)
			return s, nil
		}

		raw, err := drafter.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Str("session_id", s.SessionID).Msg("extraction call failed")
			s.ErrorMessage = fmt.Sprintf("An unexpected error occurred: %v", err)
			return s, nil
		}

		info, summary, err := parsers.ParseExtraction(raw)
		if err != nil {
			logx.Error().Err(err).Str("session_id", s.SessionID).Msg("undecodable extraction output")
			s.ErrorMessage = "Failed to parse LLM response as JSON."
			return s, nil
		}

		s.KeyInfo = info
		s.Summary = summary
		logx.Debug().Str("session_id", s.SessionID).Str("subject", info.Subject).Msg("email summarized")
		return s, nil
	}
}

// NewAskForToneStep creates the node that asks the user which tone the reply
// should take. A blank answer keeps the default. A cancelled prompt still
// defaults the tone but records a turn error, so the user sees the abort
// acknowledged and the turn ends through the error handler.
func NewAskForToneStep(prompter model.TonePrompter) *compose.Lambda {
	return compose.InvokableLambda(askForTone(prompter))
}

func askForTone(prompter model.TonePrompter) func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		tone, err := prompter.AskTone(ctx, s.KeyInfo, s.Summary)
		if err != nil {
			s.CurrentTone = model.DefaultTone
			s.ErrorMessage = "User cancelled the operation."
			return s, nil
		}

		tone = strings.TrimSpace(tone)
		if tone == "" {
			tone = model.DefaultTone
		}
		s.CurrentTone = tone
		return s, nil
	}
}

// NewGenerateInitialDraftStep creates the node that writes the first draft from
// the summary, entities and tone.
func NewGenerateInitialDraftStep(drafter model.Generator) *compose.Lambda {
	return compose.InvokableLambda(generateInitialDraft(drafter))
}

func generateInitialDraft(drafter model.Generator) func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		if s.Summary == "" || s.KeyInfo == nil {
			s.ErrorMessage = "Missing summary or entities to generate a draft."
			return s, nil
		}

		prompt, err := prompts.RenderDraft(ctx, s)
		if err != nil {
			s.ErrorMessage = fmt.Sprintf("Failed to generate draft: %v", err)
			return s, nil
		}

		content, err := drafter.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Str("session_id", s.SessionID).Msg("draft generation call failed")
			s.ErrorMessage = fmt.Sprintf("Failed to generate draft: %v", err)
			return s, nil
		}

		if s.CurrentTone == "" {
			s.CurrentTone = model.DefaultTone
		}
		s.AppendDraft(content, s.CurrentTone)
		ui.Say(ctx, "Here is a draft reply:\n\n%s", content)
		logx.Debug().Str("session_id", s.SessionID).Int("drafts", len(s.DraftHistory)).Msg("initial draft generated")
		return s, nil
	}
}

// NewRefineDraftStep creates the node that revises the current draft according
// to the feedback the router captured. Feedback is single use: it is cleared on
// success so a later turn cannot silently reuse it.
func NewRefineDraftStep(drafter model.Generator) *compose.Lambda {
	return compose.InvokableLambda(refineDraft(drafter))
}

func refineDraft(drafter model.Generator) func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		draft := s.CurrentDraft()
		if draft == nil {
			s.ErrorMessage = "No draft to refine."
			return s, nil
		}
		if strings.TrimSpace(s.UserFeedback) == "" {
			s.ErrorMessage = "No user feedback provided to refine the draft."
			return s, nil
		}

		if s.CurrentTone == "" {
			s.CurrentTone = model.DefaultTone
		}

		prompt, err := prompts.RenderRefine(ctx, draft.Content, s.UserFeedback, s.CurrentTone)
		if err != nil {
			s.ErrorMessage = fmt.Sprintf("Failed to refine draft: %v", err)
			return s, nil
		}

		content, err := drafter.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Str("session_id", s.SessionID).Msg("draft refinement call failed")
			s.ErrorMessage = fmt.Sprintf("Failed to refine draft: %v", err)
			return s, nil
		}

		s.AppendDraft(content, s.CurrentTone)
		s.UserFeedback = ""
		ui.Say(ctx, "Here is the revised draft:\n\n%s", content)
		logx.Debug().Str("session_id", s.SessionID).Int("drafts", len(s.DraftHistory)).Msg("draft refined")
		return s, nil
	}
}
