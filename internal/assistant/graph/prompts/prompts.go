// Package prompts renders the embedded prompt templates through the Eino prompt
// component, so prompt callbacks fire for every render.
package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/replypilot/server/internal/assistant/model"
)

//go:embed template/router_prompt.txt
var routerPrompt string

//go:embed template/extract_prompt.txt
var extractPrompt string

//go:embed template/draft_prompt.txt
var draftPrompt string

//go:embed template/refine_prompt.txt
var refinePrompt string

// render formats one embedded template with the given variables via the Eino
// prompt component (Go template syntax, single user message).
func render(ctx context.Context, tpl string, vars map[string]any) (string, error) {
	msgs, err := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(tpl),
	).Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("render prompt: empty result")
	}
	return msgs[0].Content, nil
}

// RenderRouter builds the classification prompt for one turn.
func RenderRouter(ctx context.Context, state *model.ConversationState) (string, error) {
	summary := "(no prior turns)"
	if len(state.ConversationSummary) > 0 {
		summary = strings.Join(state.ConversationSummary, "\n")
	}

	vars := map[string]any{
		"Intents":             model.KnownIntents(),
		"ConversationSummary": summary,
		"HasDraft":            len(state.DraftHistory) > 0,
		"LastDraft":           "",
		"UserInput":           state.UserInput,
	}
	if d := state.CurrentDraft(); d != nil {
		vars["LastDraft"] = d.Content
	}
	return render(ctx, routerPrompt, vars)
}

// RenderExtract builds the key-info extraction prompt.
func RenderExtract(ctx context.Context, email string) (string, error) {
	return render(ctx, extractPrompt, map[string]any{"Email": email})
}

// RenderDraft builds the initial-draft prompt from summary, entities and tone.
func RenderDraft(ctx context.Context, state *model.ConversationState) (string, error) {
	info := state.KeyInfo
	if info == nil {
		info = &model.KeyInfo{}
	}
	return render(ctx, draftPrompt, map[string]any{
		"Summary":         state.Summary,
		"SenderName":      info.SenderName,
		"SenderContact":   info.SenderContact,
		"ReceiverName":    info.ReceiverName,
		"ReceiverContact": info.ReceiverContact,
		"Subject":         info.Subject,
		"Tone":            state.CurrentTone,
	})
}

// RenderRefine builds the refinement prompt from the latest draft and feedback.
func RenderRefine(ctx context.Context, draft, feedback, tone string) (string, error) {
	return render(ctx, refinePrompt, map[string]any{
		"Draft":    draft,
		"Feedback": feedback,
		"Tone":     tone,
	})
}
