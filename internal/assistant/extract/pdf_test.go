package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/replypilot/server/internal/core/error"
)

func TestExtractPlainTextMissingFile(t *testing.T) {
	e := NewPDFExtractor()

	_, err := e.ExtractPlainText(context.Background(), "no-such-file.pdf")
	require.Error(t, err)
	assert.Equal(t, errx.KindExtraction, errx.KindOf(err))
	assert.Contains(t, err.Error(), "could not read PDF file at no-such-file.pdf")
}

func TestExtractPlainTextCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	e := NewPDFExtractor()
	_, err := e.ExtractPlainText(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, errx.KindExtraction, errx.KindOf(err))
}
