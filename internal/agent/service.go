package agent

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"resume-agent/internal/llm"
	"resume-agent/internal/resume"
	"resume-agent/internal/shared/telemetry"
)

// NotAvailable is the fixed sentinel returned whenever a grounded answer
// cannot be produced. Chat responses are never empty.
const NotAvailable = "This information is not available in the resume."

// minResumeChars is the minimum trimmed length for stored resume text to be
// considered usable.
const minResumeChars = 10

var (
	// ErrResumeNotFound reports that no resume has been uploaded yet.
	ErrResumeNotFound = errors.New("resume not found")
	// ErrResumeCorrupted reports an unreadable stored resume record.
	ErrResumeCorrupted = errors.New("resume data is corrupted")
	// ErrResumeEmpty reports stored resume text too short to answer from.
	ErrResumeEmpty = errors.New("resume content is empty or too short")
)

// Roles lists the candidate roles the agent knows how to discuss.
var Roles = []string{
	"backend-engineer",
	"frontend-engineer",
	"full-stack-developer",
	"devops-engineer",
}

// Service answers questions about the stored resume, grounded strictly in its
// text.
type Service struct {
	LLM     llm.Completer
	Resumes *resume.Store
}

// Chat loads the current resume record, validates it, and answers the
// message. Record problems surface as errors; model problems degrade to the
// sentinel answer.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	rec, err := s.Resumes.Load(ctx)
	switch {
	case errors.Is(err, resume.ErrNotFound):
		return "", ErrResumeNotFound
	case errors.Is(err, resume.ErrCorrupted):
		telemetry.Error("agent.record_corrupted", "err", err.Error(), "path", s.Resumes.Path())
		return "", ErrResumeCorrupted
	case err != nil:
		return "", err
	}

	text := strings.TrimSpace(rec.ExtractedText)
	if utf8.RuneCountInString(text) < minResumeChars {
		return "", ErrResumeEmpty
	}

	return s.Answer(ctx, message, rec.ExtractedText), nil
}

// Answer asks the model the question with the full resume text embedded in
// the instruction channel. There is no path that reaches the model without
// that grounding context. A failed or blank reply becomes the sentinel.
func (s *Service) Answer(ctx context.Context, question, resumeText string) string {
	if s.LLM == nil {
		return NotAvailable
	}
	reply, err := s.LLM.Complete(ctx, question, groundingInstruction(resumeText))
	if err != nil {
		telemetry.Warn("agent.completion_failed", "err", err.Error(), "question_len", len(question))
		return NotAvailable
	}
	if strings.TrimSpace(reply) == "" {
		return NotAvailable
	}
	return reply
}

// groundingInstruction is rebuilt per call; the resume text is embedded
// verbatim rather than summarized so no detail is lost.
func groundingInstruction(resumeText string) string {
	var b strings.Builder
	b.WriteString("You are an AI resume analyst. You MUST answer questions using ONLY the information contained in the resume provided below. Do NOT use any external knowledge, assumptions, or information not explicitly stated or clearly implied in the resume content.\n\n")
	b.WriteString("RESUME CONTENT:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\nSTRICT INSTRUCTIONS:\n")
	b.WriteString("- ONLY use information from the resume above - ignore any prior knowledge\n")
	b.WriteString("- If asked about something not mentioned in the resume, explicitly state \"This information is not available in the resume\"\n")
	b.WriteString("- Do NOT invent, assume, or extrapolate information not in the resume\n")
	b.WriteString("- For skills, experience, or other lists: extract them directly from the resume text\n")
	b.WriteString("- Format responses professionally using markdown:\n")
	b.WriteString("  * Use bullet points (-) for lists\n")
	b.WriteString("  * Use **bold** for emphasis\n")
	b.WriteString("  * Use headings (# ##) for sections when appropriate\n")
	b.WriteString("  * Keep responses clear, concise, and directly based on resume content\n")
	b.WriteString("- If the resume doesn't contain relevant information, say so rather than making up details\n\n")
	b.WriteString("Remember: Your responses must be 100% grounded in the resume content provided. Do not add external context or knowledge.")
	return b.String()
}
