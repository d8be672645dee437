package analyses

import (
	"time"
	"unicode/utf8"
)

// Result packages a summary with its metadata for the boundary layer.
type Result struct {
	Summary     string   `json:"summary"`
	InputLength int      `json:"inputLength"`
	Engine      string   `json:"engine"`
	Timestamp   string   `json:"timestamp"`
	PDFInfo     *PDFInfo `json:"pdfInfo,omitempty"`
}

// PDFInfo carries extraction metadata for PDF-sourced input.
type PDFInfo struct {
	PageCount   int    `json:"pageCount"`
	ExtractedAt string `json:"extractedAt"`
}

// newResult assembles a Result. Engine reflects the code path that actually
// produced the summary, not just whether a remote backend is configured.
func newResult(summary, engine, text string) Result {
	return Result{
		Summary:     summary,
		InputLength: utf8.RuneCountInString(text),
		Engine:      engine,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}
