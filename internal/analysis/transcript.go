package analysis

import (
	"strings"
	"unicode"

	"github.com/vocaprep/interview-engine/internal/entity"
)

// NormalizeTranscript turns raw STT output into the immutable Transcript
// the analyzers consume: lower-cased punctuation-free tokens plus the
// original sentence split. Empty or whitespace-only input yields a valid
// degenerate transcript.
func NormalizeTranscript(raw string) entity.Transcript {
	trimmed := strings.TrimSpace(raw)

	return entity.Transcript{
		RawText:   raw,
		Tokens:    Tokenize(trimmed),
		Sentences: SplitSentences(trimmed),
	}
}

// Tokenize lower-cases the text and splits it into words, stripping
// surrounding punctuation but keeping word-internal characters such as
// apostrophes and parentheses ("O(1)", "don't").
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != ')' && r != '('
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// SplitSentences splits text on terminal punctuation. Text without any
// terminator counts as a single sentence.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// ContainsPhrase reports whether the phrase (possibly multi-word, e.g.
// "you know") occurs in tokens as a contiguous run.
func ContainsPhrase(tokens []string, phrase string) int {
	parts := strings.Fields(strings.ToLower(phrase))
	if len(parts) == 0 || len(tokens) < len(parts) {
		return 0
	}

	count := 0
	for i := 0; i+len(parts) <= len(tokens); i++ {
		match := true
		for j, p := range parts {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}

	return count
}
