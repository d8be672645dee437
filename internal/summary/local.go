package summary

import (
	"regexp"
	"strings"
)

const (
	localSentenceCount = 3
	localMinJoinedLen  = 30
	localCutoffChars   = 300
)

var newlineRuns = regexp.MustCompile(`\n+`)

// LocalSummary is the deterministic extractive summarizer used when no remote
// backend is configured or the remote call fails. It takes the first three
// sentences of the text; if the joined result is too short to be a useful
// summary (short or unpunctuated input), it falls back to a flat character
// cutoff of the original text.
func LocalSummary(text string) string {
	flat := newlineRuns.ReplaceAllString(text, " ")
	sentences := splitSentences(flat)
	if len(sentences) > localSentenceCount {
		sentences = sentences[:localSentenceCount]
	}
	joined := strings.Join(sentences, " ")
	if len(joined) > localMinJoinedLen {
		return joined
	}

	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) <= localCutoffChars {
		return trimmed
	}
	return string(runes[:localCutoffChars]) + "…"
}

// splitSentences cuts on terminal punctuation (. ? !) followed by whitespace,
// keeping the punctuation with its sentence.
func splitSentences(s string) []string {
	var out []string
	runes := []rune(s)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		// Consume a run of terminal punctuation, then require whitespace.
		end := i + 1
		for end < len(runes) && isTerminal(runes[end]) {
			end++
		}
		if end >= len(runes) || !isSpace(runes[end]) {
			i = end - 1
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start:end])); sentence != "" {
			out = append(out, sentence)
		}
		for end < len(runes) && isSpace(runes[end]) {
			end++
		}
		start = end
		i = end - 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
