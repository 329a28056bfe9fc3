package steps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replypilot/server/internal/assistant/model"
)

func TestRouteTurnEmptyInputSkipsClassifier(t *testing.T) {
	gen := &scriptedGenerator{}
	s := model.NewConversationState("sess-1")
	s.UserInput = "   "

	out, err := routeTurn(gen)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, model.IntentUnclear, out.Intent)
	assert.Empty(t, out.ErrorMessage)
	assert.Empty(t, gen.prompts, "no classification call for blank input")
}

func TestRouteTurnClassifierFailure(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("backend down")}
	s := model.NewConversationState("sess-1")
	s.UserInput = "hello"

	out, err := routeTurn(gen)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, model.IntentUnclear, out.Intent)
	assert.Contains(t, out.ErrorMessage, "Failed to classify intent:")
}

func TestRouteTurnUndecodableOutput(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{"I have no idea"}}
	s := model.NewConversationState("sess-1")
	s.UserInput = "hello"

	out, err := routeTurn(gen)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, model.IntentUnclear, out.Intent)
	assert.Equal(t, "Failed to parse LLM response as JSON.", out.ErrorMessage)
}

func TestRouteTurnNewEmailPrimesOriginalEmail(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{`{"intent": "process_new_email"}`}}
	s := model.NewConversationState("sess-1")
	s.UserInput = "Hi team, please see the attached invoice."

	out, err := routeTurn(gen)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, model.IntentProcessNewEmail, out.Intent)
	assert.Equal(t, s.UserInput, out.OriginalEmail)
	assert.Empty(t, out.UserFeedback)
	require.Len(t, out.ConversationSummary, 1)
	assert.Contains(t, out.ConversationSummary[0], "process_new_email")
}

func TestRouteTurnRefinePrimesFeedback(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{`{"intent": "refine_draft"}`}}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = "the original email"
	s.UserInput = "make it more formal"

	out, err := routeTurn(gen)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, model.IntentRefineDraft, out.Intent)
	assert.Equal(t, "make it more formal", out.UserFeedback)
	assert.Equal(t, "the original email", out.OriginalEmail, "refine must not clobber the email")
}

func TestRouteTurnCapturesSaveTarget(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{`{"intent": "save_draft", "save_target": "s3"}`}}
	s := model.NewConversationState("sess-1")
	s.UserInput = "save this to s3"

	out, err := routeTurn(gen)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, model.IntentSaveDraft, out.Intent)
	assert.Equal(t, model.SaveTargetRemote, out.SaveTarget)
}

func TestRouteTurnKeepsPriorSaveTarget(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{`{"intent": "save_draft"}`}}
	s := model.NewConversationState("sess-1")
	s.SaveTarget = model.SaveTargetRemote
	s.UserInput = "save it"

	out, err := routeTurn(gen)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, model.SaveTargetRemote, out.SaveTarget)
}

func TestIntentConditionDispatch(t *testing.T) {
	tests := []struct {
		intent model.Intent
		node   string
	}{
		{model.IntentProcessNewEmail, NodeParseInput},
		{model.IntentRefineDraft, NodeRefineDraft},
		{model.IntentShowInfo, NodeShowInfo},
		{model.IntentSaveDraft, NodeSaveDraft},
		{model.IntentResetSession, NodeResetSession},
		{model.IntentHandleIdleChat, NodeHandleIdleChat},
		{model.IntentUnclear, NodeHandleUnclear},
		{model.Intent("order_pizza"), NodeHandleUnclear},
	}

	cond := NewIntentCondition()
	for _, tt := range tests {
		s := model.NewConversationState("sess-1")
		s.Intent = tt.intent

		node, err := cond(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, tt.node, node, tt.intent.String())
	}
}

func TestIntentConditionErrorWinsOverIntent(t *testing.T) {
	s := model.NewConversationState("sess-1")
	s.Intent = model.IntentShowInfo
	s.ErrorMessage = "Failed to classify intent: backend down"

	node, err := NewIntentCondition()(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, NodeHandleError, node)
}

func TestErrorCheckCondition(t *testing.T) {
	cond := NewErrorCheckCondition(NodeAskForTone)

	s := model.NewConversationState("sess-1")
	node, err := cond(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, NodeAskForTone, node)

	s.ErrorMessage = "No email content to process."
	node, err = cond(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, NodeHandleError, node)
}
