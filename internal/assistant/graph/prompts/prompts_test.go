package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replypilot/server/internal/assistant/model"
)

func TestRenderRouter(t *testing.T) {
	s := model.NewConversationState("sess-1")
	s.UserInput = "make it more formal"
	s.AppendDraft("Hi Alice, confirmed!", "casual")
	s.AppendSummaryEntry("User said: 'email text' -> AI classified intent as: 'process_new_email'")

	out, err := RenderRouter(context.Background(), s)
	require.NoError(t, err)

	assert.Contains(t, out, "make it more formal")
	assert.Contains(t, out, "Hi Alice, confirmed!")
	assert.Contains(t, out, "process_new_email")
	for _, intent := range model.KnownIntents() {
		assert.Contains(t, out, intent.String())
	}
}

func TestRenderRouterFirstTurn(t *testing.T) {
	s := model.NewConversationState("sess-1")
	s.UserInput = "hello"

	out, err := RenderRouter(context.Background(), s)
	require.NoError(t, err)
	assert.Contains(t, out, "(no prior turns)")
}

func TestRenderExtract(t *testing.T) {
	out, err := RenderExtract(context.Background(), "Hi Bob, please confirm the budget. - Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Hi Bob, please confirm the budget. - Alice")
}

func TestRenderDraft(t *testing.T) {
	s := model.NewConversationState("sess-1")
	s.Summary = "Alice asks Bob to confirm the budget."
	s.KeyInfo = &model.KeyInfo{SenderName: "Alice Kim", Subject: "Q3 budget"}
	s.CurrentTone = "friendly"

	out, err := RenderDraft(context.Background(), s)
	require.NoError(t, err)

	assert.Contains(t, out, "Alice asks Bob to confirm the budget.")
	assert.Contains(t, out, "Alice Kim")
	assert.Contains(t, out, "friendly")
}

func TestRenderDraftNilKeyInfo(t *testing.T) {
	s := model.NewConversationState("sess-1")
	s.Summary = "a summary"

	_, err := RenderDraft(context.Background(), s)
	assert.NoError(t, err)
}

func TestRenderRefine(t *testing.T) {
	out, err := RenderRefine(context.Background(), "Hi Alice, confirmed!", "make it more formal", "professional")
	require.NoError(t, err)

	assert.Contains(t, out, "Hi Alice, confirmed!")
	assert.Contains(t, out, "make it more formal")
	assert.Contains(t, out, "professional")
}
