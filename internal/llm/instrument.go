package llm

import (
	"context"
	"time"

	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/telemetry"
)

// Instrument records latency for every call on c.
func Instrument(c Capability, provider string) Capability {
	return &instrumented{inner: c, provider: provider}
}

type instrumented struct {
	inner    Capability
	provider string
}

func (i *instrumented) Answer(ctx context.Context, docText, question string) (AnswerResult, error) {
	start := time.Now()
	res, err := i.inner.Answer(ctx, docText, question)
	i.observe("answer", start, err)
	return res, err
}

func (i *instrumented) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := i.inner.Summarize(ctx, text)
	i.observe("summarize", start, err)
	return out, err
}

func (i *instrumented) ConcurrencySafe() bool { return IsConcurrencySafe(i.inner) }

func (i *instrumented) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.ObserveCapabilityDuration(elapsed)
	fields := map[string]any{
		"provider":    i.provider,
		"op":          op,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil {
		fields["err"] = err
		telemetry.Warn("llm.call_failed", fields)
		return
	}
	telemetry.Info("llm.call", fields)
}
