package summary

import (
	"context"
	"strings"

	"resume-agent/internal/llm"
	"resume-agent/internal/shared/telemetry"
)

// EngineLocalFallback is the engine tag reported when the local summarizer
// produced the result.
const EngineLocalFallback = "local-fallback"

const summarizeInstruction = "You are a professional resume summarizer. " +
	"Summarize the following resume text into a concise, professional summary " +
	"of 2-3 sentences highlighting key skills and experience."

// Service produces resume summaries, preferring the remote model and
// degrading to the local extractive summarizer on any failure.
type Service struct {
	// LLM is nil when no remote backend is configured; the local summarizer
	// is then the primary path.
	LLM llm.Completer

	// Model is the engine tag reported for remote summaries.
	Model string
}

// Summarize returns a summary and the engine that actually produced it. It
// never fails: configuration errors, exhausted retries, and empty replies all
// fall through silently to the local summarizer.
func (s *Service) Summarize(ctx context.Context, text, kind string) (string, string) {
	if s.LLM != nil {
		out, err := s.LLM.Complete(ctx, text, summarizeInstruction)
		switch {
		case err != nil:
			telemetry.Warn("summary.remote_failed",
				"err", err.Error(),
				"kind", kind,
				"input_len", len(text),
			)
		case strings.TrimSpace(out) == "":
			telemetry.Warn("summary.remote_empty", "kind", kind)
		default:
			return out, s.Model
		}
	}
	return LocalSummary(text), EngineLocalFallback
}
