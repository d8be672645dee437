package analyses

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"resume-agent/internal/extract"
	"resume-agent/internal/resume"
	"resume-agent/internal/shared/telemetry"
	"resume-agent/internal/shared/util"
	"resume-agent/internal/summary"
)

// minExtractedChars matches the grounding precondition: extracted resume text
// shorter than this (trimmed) is rejected at ingestion, before any model call.
const minExtractedChars = 10

// ErrTextTooShort rejects PDF uploads whose extracted text is too short to be
// a usable resume.
var ErrTextTooShort = errors.New("extracted resume text is empty or too short")

// Service runs resume analysis: summarization for raw text, and
// validate/extract/persist/summarize for PDF uploads.
type Service struct {
	Summaries *summary.Service
	Resumes   *resume.Store
}

// AnalyzeText summarizes raw resume text. It never fails; the summary policy
// absorbs all model errors.
func (s *Service) AnalyzeText(ctx context.Context, text, kind string) Result {
	sum, engine := s.Summaries.Summarize(ctx, text, kind)
	return newResult(sum, engine, text)
}

// AnalyzePDF validates and extracts the uploaded document, persists the
// extraction as the current resume record, then summarizes it. Validation
// problems surface as errors; summarization still never fails.
func (s *Service) AnalyzePDF(ctx context.Context, data []byte, fileName, kind string) (Result, error) {
	ext, err := extract.FromPDF(ctx, data)
	if err != nil {
		return Result{}, err
	}
	if utf8.RuneCountInString(strings.TrimSpace(ext.Text)) < minExtractedChars {
		return Result{}, ErrTextTooShort
	}

	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		sanitized = ""
	}
	rec := resume.Record{
		ExtractedText: ext.Text,
		FileName:      sanitized,
		PageCount:     ext.PageCount,
		ExtractedAt:   ext.ExtractedAt,
		UploadedAt:    time.Now().UTC(),
	}
	if err := s.Resumes.Save(ctx, rec); err != nil {
		return Result{}, err
	}
	telemetry.Info("analyses.resume_stored",
		"file_name", sanitized,
		"page_count", ext.PageCount,
		"text_len", len(ext.Text),
	)

	sum, engine := s.Summaries.Summarize(ctx, ext.Text, kind)
	res := newResult(sum, engine, ext.Text)
	res.PDFInfo = &PDFInfo{
		PageCount:   ext.PageCount,
		ExtractedAt: ext.ExtractedAt.Format(time.RFC3339),
	}
	return res, nil
}
