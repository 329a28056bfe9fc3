package steps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replypilot/server/internal/assistant/model"
	errx "github.com/replypilot/server/internal/core/error"
)

func TestLooksLikeFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"report.pdf", true},
		{"dir/report.pdf", true},
		{"notes.txt", true},
		{"no extension here", false},
		{"Dr. Smith wrote to me", false},
		{"plainword", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LooksLikeFilePath(tt.in), tt.in)
	}
}

func TestCutLoadCommand(t *testing.T) {
	tests := []struct {
		in   string
		path string
		ok   bool
	}{
		{"load report.pdf", "report.pdf", true},
		{"LOAD report.pdf", "report.pdf", true},
		{"load   spaced.pdf  ", "spaced.pdf", true},
		{"load", "", false},
		{"load ", "", false},
		{"loading the data", "", false},
		{"please load report.pdf", "", false},
	}

	for _, tt := range tests {
		path, ok := CutLoadCommand(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.path, path, tt.in)
	}
}

func TestParseInputEmpty(t *testing.T) {
	ext := &fakeExtractor{}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = "   "

	out, err := parseInput(ext)(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "Input email cannot be empty", out.ErrorMessage)
}

func TestParseInputPlainTextPassesThrough(t *testing.T) {
	ext := &fakeExtractor{}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = "Hi Bob, can we move the meeting to Tuesday?"

	out, err := parseInput(ext)(context.Background(), s)
	require.NoError(t, err)

	assert.Empty(t, out.ErrorMessage)
	assert.Equal(t, "Hi Bob, can we move the meeting to Tuesday?", out.OriginalEmail)
	assert.Empty(t, ext.paths, "plain text must not touch the extractor")
}

func TestParseInputNonPDFPathPassesThrough(t *testing.T) {
	// A path-looking input that is not a PDF is treated as the email text.
	ext := &fakeExtractor{}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = "notes.txt"

	out, err := parseInput(ext)(context.Background(), s)
	require.NoError(t, err)

	assert.Empty(t, out.ErrorMessage)
	assert.Equal(t, "notes.txt", out.OriginalEmail)
	assert.Empty(t, ext.paths)
}

func TestParseInputBarePDFPathNotFound(t *testing.T) {
	ext := &fakeExtractor{}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = "no-such-file.pdf"

	out, err := parseInput(ext)(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, "File not found: no-such-file.pdf", out.ErrorMessage)
	assert.Empty(t, ext.paths)
}

func TestParseInputBarePDFPathExtracted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	ext := &fakeExtractor{content: "Dear Bob, the shipment is delayed."}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = path

	out, err := parseInput(ext)(context.Background(), s)
	require.NoError(t, err)

	assert.Empty(t, out.ErrorMessage)
	assert.Equal(t, "Dear Bob, the shipment is delayed.", out.OriginalEmail)
	assert.Equal(t, path, out.EmailPath)
	assert.Equal(t, []string{path}, ext.paths)
}

func TestParseInputLoadCommandSkipsStat(t *testing.T) {
	// The explicit load form goes straight to the extraction port, which owns
	// the not-found handling for its own backend.
	ext := &fakeExtractor{content: "email body from pdf"}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = "load report.pdf"

	out, err := parseInput(ext)(context.Background(), s)
	require.NoError(t, err)

	assert.Empty(t, out.ErrorMessage)
	assert.Equal(t, "email body from pdf", out.OriginalEmail)
	assert.Equal(t, "report.pdf", out.EmailPath)
}

func TestParseInputExtractorFailure(t *testing.T) {
	cause := errors.New("bad xref table")
	ext := &fakeExtractor{err: errx.WrapExtraction(cause, "report.pdf")}
	s := model.NewConversationState("sess-1")
	s.OriginalEmail = "load report.pdf"

	out, err := parseInput(ext)(context.Background(), s)
	require.NoError(t, err)

	assert.Contains(t, out.ErrorMessage, "could not read PDF file at report.pdf")
}
