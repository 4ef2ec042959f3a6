package llm

import (
	"context"
	"sync"
)

// Serialize wraps c so that at most one call runs at a time.
func Serialize(c Capability) Capability {
	if _, ok := c.(*serialCapability); ok {
		return c
	}
	return &serialCapability{inner: c}
}

type serialCapability struct {
	mu    sync.Mutex
	inner Capability
}

func (s *serialCapability) Answer(ctx context.Context, docText, question string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return AnswerResult{}, err
	}
	return s.inner.Answer(ctx, docText, question)
}

func (s *serialCapability) Summarize(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.inner.Summarize(ctx, text)
}

func (s *serialCapability) ConcurrencySafe() bool { return true }
