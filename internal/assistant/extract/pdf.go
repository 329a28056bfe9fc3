// Package extract implements the content-extraction port for PDF files.
package extract

import (
	"bytes"
	"context"

	"github.com/ledongthuc/pdf"

	"github.com/replypilot/server/internal/assistant/model"
	errx "github.com/replypilot/server/internal/core/error"
	logx "github.com/replypilot/server/pkg/logger"
)

// PDFExtractor reads the plain text of a PDF document. Every failure, including
// a missing or corrupt file, surfaces as an extraction error naming the path.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) ExtractPlainText(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", errx.WrapExtraction(err, path)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errx.WrapExtraction(err, path)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", errx.WrapExtraction(err, path)
	}

	logx.Debug().Str("path", path).Int("pages", reader.NumPage()).Msg("pdf text extracted")
	return buf.String(), nil
}

var _ model.Extractor = (*PDFExtractor)(nil)
