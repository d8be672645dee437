package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// minimalPDF assembles a one-page PDF carrying the given text in a single
// content stream, with the xref offsets computed from the actual object
// positions. The text must not contain parentheses or backslashes.
func minimalPDF(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	writeObj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	writeObj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))

	xref := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref))
	return buf.Bytes()
}

func TestIsPDFRejectsNonPDF(t *testing.T) {
	cases := map[string][]byte{
		"empty":        nil,
		"plain text":   []byte("just a text file"),
		"docx-like":    []byte("PK\x03\x04 not a pdf"),
		"magic only":   []byte("%PDF-"),
		"broken after": []byte("%PDF-1.4 then garbage with no xref"),
	}
	for name, data := range cases {
		if IsPDF(data) {
			t.Errorf("%s: expected IsPDF to reject", name)
		}
	}
}

func TestFromPDFExtractsText(t *testing.T) {
	data := minimalPDF(t, "Jane Doe is a senior backend engineer with Go experience.")
	if !IsPDF(data) {
		t.Fatal("expected fixture to pass IsPDF")
	}

	ext, err := FromPDF(context.Background(), data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(ext.Text, "Jane Doe") {
		t.Fatalf("expected extracted text to carry the page content, got %q", ext.Text)
	}
	if ext.PageCount != 1 {
		t.Fatalf("expected 1 page, got %d", ext.PageCount)
	}
	if ext.ExtractedAt.IsZero() {
		t.Fatal("expected ExtractedAt to be set")
	}
}

func TestFromPDFRejectsNonPDF(t *testing.T) {
	_, err := FromPDF(context.Background(), []byte("hello world"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("expected ErrNotPDF, got %v", err)
	}
}

func TestFromPDFRejectsMalformedPDF(t *testing.T) {
	data := []byte("%PDF-1.7\nthis body is not a valid pdf structure")
	_, err := FromPDF(context.Background(), data)
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("expected ErrNotPDF for malformed pdf, got %v", err)
	}
	if !strings.Contains(err.Error(), "PDF") {
		t.Fatalf("error should mention PDF, got %v", err)
	}
}

func TestFromPDFHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FromPDF(ctx, []byte("%PDF-1.4"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
