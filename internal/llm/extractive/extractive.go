// Package extractive answers and summarizes in-process without a model server.
// Answers are whole sentences lifted from the document; summaries are the
// highest scoring sentences by normalized term frequency.
package extractive

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"docqa-backend/internal/llm"
)

const defaultMaxSentences = 5

// Pipeline holds scratch state reused between calls and is not safe for concurrent use.
type Pipeline struct {
	maxSentences int
	splitter     *regexp.Regexp
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}

	freq  map[string]float64
	terms map[string]struct{}
	hits  map[string]struct{}
}

// New creates a pipeline whose summaries keep at most maxSentences sentences.
func New(maxSentences int) *Pipeline {
	if maxSentences <= 0 {
		maxSentences = defaultMaxSentences
	}
	return &Pipeline{
		maxSentences: maxSentences,
		splitter:     regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`),
		stopwords:    defaultStopwords(),
		freq:         make(map[string]float64),
		terms:        make(map[string]struct{}),
		hits:         make(map[string]struct{}),
	}
}

// ConcurrencySafe reports false; callers must serialize access.
func (p *Pipeline) ConcurrencySafe() bool { return false }

// Answer returns the sentence sharing the largest fraction of the question's
// content words, with that fraction as confidence and its rune span.
func (p *Pipeline) Answer(ctx context.Context, docText, question string) (llm.AnswerResult, error) {
	if err := ctx.Err(); err != nil {
		return llm.AnswerResult{}, err
	}

	clear(p.terms)
	for _, tok := range p.tokens(question) {
		if _, stop := p.stopwords[tok]; !stop {
			p.terms[tok] = struct{}{}
		}
	}
	if len(p.terms) == 0 {
		return llm.AnswerResult{}, nil
	}

	bestIdx, bestScore := -1, 0.0
	sentences := p.sentences(docText)
	for i, sent := range sentences {
		clear(p.hits)
		for _, tok := range p.tokens(sent.text) {
			if _, ok := p.terms[tok]; ok {
				p.hits[tok] = struct{}{}
			}
		}
		score := float64(len(p.hits)) / float64(len(p.terms))
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return llm.AnswerResult{}, nil
	}

	best := sentences[bestIdx]
	confidence := math.Round(bestScore*1000) / 1000
	start, end := best.start, best.end
	return llm.AnswerResult{
		Answer:     best.text,
		Confidence: &confidence,
		Start:      &start,
		End:        &end,
	}, nil
}

// Summarize keeps the top-ranked sentences in their original order.
func (p *Pipeline) Summarize(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sentences := p.sentences(text)
	if len(sentences) == 0 {
		return "", nil
	}

	clear(p.freq)
	for _, sent := range sentences {
		for _, tok := range p.tokens(sent.text) {
			if _, ok := p.stopwords[tok]; ok {
				continue
			}
			p.freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range p.freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range p.freq {
			p.freq[k] = v / maxF
		}
	}

	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sent := range sentences {
		toks := p.tokens(sent.text)
		score := 0.0
		for _, tok := range toks {
			score += p.freq[tok]
		}
		if l := float64(len(toks)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = ranked{idx: i, score: score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	n := p.maxSentences
	if n > len(scores) {
		n = len(scores)
	}
	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	out := make([]string, 0, n)
	for _, idx := range selected {
		out = append(out, sentences[idx].text)
	}
	return strings.Join(out, " "), nil
}

type sentence struct {
	text       string
	start, end int // rune offsets into the source text, end exclusive
}

func (p *Pipeline) sentences(text string) []sentence {
	var out []sentence
	last := 0
	for _, loc := range p.splitter.FindAllStringIndex(text, -1) {
		if s, ok := trimmedSpan(text, loc[0], loc[1]); ok {
			out = append(out, s)
		}
		last = loc[1]
	}
	// Trailing text without terminal punctuation is still a sentence.
	if s, ok := trimmedSpan(text, last, len(text)); ok {
		out = append(out, s)
	}
	return out
}

func trimmedSpan(text string, from, to int) (sentence, bool) {
	segment := text[from:to]
	trimmedLeft := strings.TrimLeftFunc(segment, unicode.IsSpace)
	from += len(segment) - len(trimmedLeft)
	body := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	if body == "" {
		return sentence{}, false
	}
	start := utf8.RuneCountInString(text[:from])
	return sentence{
		text:  body,
		start: start,
		end:   start + utf8.RuneCountInString(body),
	}, true
}

func (p *Pipeline) tokens(text string) []string {
	return p.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"what", "which", "who", "whom", "whose", "where", "when", "why", "how", "do", "does", "did", "i", "you", "we", "they", "he", "she", "me", "my", "our", "your", "there", "has", "have", "had",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var (
	_ llm.Capability          = (*Pipeline)(nil)
	_ llm.ConcurrencyReporter = (*Pipeline)(nil)
)
