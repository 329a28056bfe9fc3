package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	errx "github.com/replypilot/server/internal/core/error"

	"github.com/replypilot/server/internal/assistant/model"
	"github.com/replypilot/server/internal/ui"
	logx "github.com/replypilot/server/pkg/logger"
)

const unclearHelp = "I'm not sure what you mean. You can paste an email to answer, " +
	"say 'load <path>' to read one from a file, ask me to refine the current draft, " +
	"or say 'show info', 'save draft', or 'reset'."

const idleChatReply = "Hello! How can I help you with your email?"

// NewShowInfoStep creates the read-only node rendering the extracted key info
// and summary. It mutates nothing, so asking twice shows the same thing.
func NewShowInfoStep() *compose.Lambda {
	return compose.InvokableLambda(showInfo())
}

func showInfo() func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		if s.KeyInfo == nil && s.Summary == "" {
			ui.Say(ctx, "No information extracted yet.")
			return s, nil
		}

		var b strings.Builder
		b.WriteString("Key Info:\n")
		if info := s.KeyInfo; info != nil {
			if info.SenderName != "" {
				fmt.Fprintf(&b, "  Sender: %s\n", info.SenderName)
			}
			if info.SenderContact != "" {
				fmt.Fprintf(&b, "  Sender contact: %s\n", info.SenderContact)
			}
			if info.ReceiverName != "" {
				fmt.Fprintf(&b, "  Receiver: %s\n", info.ReceiverName)
			}
			if info.ReceiverContact != "" {
				fmt.Fprintf(&b, "  Receiver contact: %s\n", info.ReceiverContact)
			}
			if info.Subject != "" {
				fmt.Fprintf(&b, "  Subject: %s\n", info.Subject)
			}
		}
		if s.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s", s.Summary)
		}
		ui.Say(ctx, "%s", strings.TrimRight(b.String(), "\n"))
		return s, nil
	}
}

// NewSaveDraftStep creates the node persisting the current draft under a
// timestamped filename. The target comes from the router's classification
// metadata (defaulting to local); the remote bucket comes from configuration.
func NewSaveDraftStep(store model.Store, storageCfg model.StorageConfig) *compose.Lambda {
	return compose.InvokableLambda(saveDraft(store, storageCfg))
}

func saveDraft(store model.Store, storageCfg model.StorageConfig) func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		draft := s.CurrentDraft()
		if draft == nil {
			s.ErrorMessage = "No draft to save."
			return s, nil
		}

		target := s.SaveTarget
		if target == "" {
			target = model.SaveTargetLocal
		}
		var bucket string
		if target == model.SaveTargetRemote {
			bucket = storageCfg.RemoteBucket
		}

		locator := fmt.Sprintf("draft_%s.txt", time.Now().UTC().Format("20060102T150405Z"))
		if err := store.Store(ctx, draft.Content, locator, target, bucket); err != nil {
			logx.Error().Err(err).
				Str("session_id", s.SessionID).
				Str("target", string(target)).
				Msg("draft save failed")
			s.ErrorMessage = fmt.Sprintf("Failed to save draft: %v", err)
			return s, nil
		}

		ui.Say(ctx, "Draft saved successfully to %s (%s).", locator, target)
		logx.Debug().Str("session_id", s.SessionID).Str("locator", locator).Str("target", string(target)).Msg("draft saved")
		return s, nil
	}
}

// NewResetSessionStep creates the node rebuilding the state to its initial
// shape. A missing session id is a caller contract violation, not a runtime
// condition: it aborts the invocation instead of becoming a turn error.
func NewResetSessionStep() *compose.Lambda {
	return compose.InvokableLambda(resetSession())
}

func resetSession() func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		if s.SessionID == "" {
			return nil, errx.Fatal("reset invoked on a state with no session id")
		}
		s.Reset()
		ui.Say(ctx, "Starting a new session. Paste an email or load a file to begin.")
		return s, nil
	}
}

// NewHandleUnclearStep creates the fallback node for input the classifier could
// not place, and for intents outside the enum.
func NewHandleUnclearStep() *compose.Lambda {
	return compose.InvokableLambda(handleUnclear())
}

func handleUnclear() func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		s.Intent = model.IntentUnclear
		ui.Say(ctx, "%s", unclearHelp)
		return s, nil
	}
}

// NewHandleIdleChatStep creates the node answering small talk. It deliberately
// touches nothing else in the state.
func NewHandleIdleChatStep() *compose.Lambda {
	return compose.InvokableLambda(handleIdleChat())
}

func handleIdleChat() func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		ui.Say(ctx, "%s", idleChatReply)
		return s, nil
	}
}

// NewHandleErrorStep creates the single node that surfaces and clears a turn
// error. Every recoverable failure in the graph funnels through here, which is
// the only guarantee that ErrorMessage never survives into the next turn.
func NewHandleErrorStep() *compose.Lambda {
	return compose.InvokableLambda(handleError())
}

func handleError() func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		if s.ErrorMessage != "" {
			ui.Say(ctx, "An error occurred: %s", s.ErrorMessage)
			s.ErrorMessage = ""
		}
		return s, nil
	}
}
