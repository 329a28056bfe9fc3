package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cloudwego/eino/compose"

	"github.com/replypilot/server/internal/assistant/model"
	logx "github.com/replypilot/server/pkg/logger"
)

// LooksLikeFilePath reports whether the input plausibly names a file: it
// contains a period and no whitespace. Deliberately crude. "Dr. Smith wrote"
// is prose and fails the whitespace test, while a path with spaces is a known
// false negative.
func LooksLikeFilePath(s string) bool {
	if !strings.Contains(s, ".") {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}

// CutLoadCommand extracts the path argument from a "load <path>" command,
// case-insensitively. ok is false when the input is not a load command.
func CutLoadCommand(s string) (path string, ok bool) {
	if len(s) < 5 || !strings.EqualFold(s[:4], "load") {
		return "", false
	}
	rest := s[4:]
	if !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	path = strings.TrimSpace(rest)
	if path == "" {
		return "", false
	}
	return path, true
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// NewParseInputStep creates the node that normalizes the email source for a
// process_new_email turn. Plain text passes through; a PDF path (direct or via
// a "load" command) is read through the extraction port. Only .pdf candidates
// ever touch the filesystem; a non-PDF path-looking input is treated as the
// email text itself.
func NewParseInputStep(extractor model.Extractor) *compose.Lambda {
	return compose.InvokableLambda(parseInput(extractor))
}

func parseInput(extractor model.Extractor) func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return func(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
		text := strings.TrimSpace(s.OriginalEmail)
		if text == "" {
			s.ErrorMessage = "Input email cannot be empty"
			return s, nil
		}
		s.OriginalEmail = text

		candidate, loaded := CutLoadCommand(text)
		if !loaded {
			candidate = text
		}

		if !LooksLikeFilePath(candidate) || !isPDF(candidate) {
			return s, nil
		}

		// An explicit load command goes straight to the extraction port; a bare
		// path is verified first so a typo yields a crisp not-found message.
		if !loaded {
			if _, err := os.Stat(candidate); err != nil {
				s.ErrorMessage = fmt.Sprintf("File not found: %s", candidate)
				return s, nil
			}
		}

		content, err := extractor.ExtractPlainText(ctx, candidate)
		if err != nil {
			logx.Error().Err(err).Str("path", candidate).Msg("pdf extraction failed")
			s.ErrorMessage = err.Error()
			return s, nil
		}

		s.OriginalEmail = content
		s.EmailPath = candidate
		logx.Debug().Str("path", candidate).Int("chars", len(content)).Msg("email loaded from pdf")
		return s, nil
	}
}
