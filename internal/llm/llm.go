package llm

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// AnswerResult is the outcome of a question against a context.
// Confidence and the character span are only set by backends that produce them.
type AnswerResult struct {
	Answer     string
	Confidence *float64
	Start      *int
	End        *int
}

// Capability answers questions about a text and summarizes it.
type Capability interface {
	Answer(ctx context.Context, docText, question string) (AnswerResult, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// ConcurrencyReporter is implemented by capabilities that know whether
// concurrent calls are safe.
type ConcurrencyReporter interface {
	ConcurrencySafe() bool
}

// ErrEmptyResponse is returned when a provider produced no candidates at all.
var ErrEmptyResponse = errors.New("llm returned no response")

// IsConcurrencySafe reports false only for capabilities that say so.
func IsConcurrencySafe(c Capability) bool {
	if r, ok := c.(ConcurrencyReporter); ok {
		return r.ConcurrencySafe()
	}
	return true
}

// Truncate caps text at maxChars runes. A non-positive limit disables truncation.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n == maxChars {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
