package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// ErrNotPDF rejects uploads that are not well-formed PDF documents.
var ErrNotPDF = errors.New("only valid PDF files are supported")

// Extraction is the plain text pulled from an uploaded PDF.
type Extraction struct {
	Text        string
	PageCount   int
	ExtractedAt time.Time
}

// IsPDF reports whether data looks like a parseable PDF document.
func IsPDF(data []byte) bool {
	if !bytes.HasPrefix(data, pdfMagic) {
		return false
	}
	_, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	return err == nil
}

// FromPDF validates the payload and extracts plain text plus page count.
// Library used: github.com/ledongthuc/pdf.
func FromPDF(ctx context.Context, data []byte) (Extraction, error) {
	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return Extraction{}, ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Extraction{}, fmt.Errorf("read extracted text: %w", err)
	}

	return Extraction{
		Text:        buf.String(),
		PageCount:   reader.NumPage(),
		ExtractedAt: time.Now().UTC(),
	}, nil
}
