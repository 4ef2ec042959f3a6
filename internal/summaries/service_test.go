package summaries

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/llm"
	"docqa-backend/internal/shared/telemetry"
)

type fakeCapability struct {
	summary string
	err     error
	calls   int
}

func (f *fakeCapability) Answer(ctx context.Context, docText, question string) (llm.AnswerResult, error) {
	return llm.AnswerResult{}, errors.New("not used")
}

func (f *fakeCapability) Summarize(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.summary, f.err
}

type fakeRenderer struct {
	got string
	err error
}

func (f *fakeRenderer) SummaryPDF(text string) ([]byte, error) {
	f.got = text
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake " + text), nil
}

func seededRepo(t *testing.T, text string) (*documents.MemoryRepo, string) {
	t.Helper()
	repo := documents.NewMemoryRepo()
	id, err := repo.Put(context.Background(), text)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	return repo, id
}

func TestSummaryUsesCapabilityOutput(t *testing.T) {
	repo, id := seededRepo(t, "Long text.")
	renderer := &fakeRenderer{}
	svc := &Service{Docs: repo, Capability: &fakeCapability{summary: " Short. "}, Renderer: renderer}

	if _, err := svc.SummaryPDF(context.Background(), id); err != nil {
		t.Fatalf("SummaryPDF: %v", err)
	}
	if renderer.got != "Short." {
		t.Fatalf("unexpected rendered text %q", renderer.got)
	}
}

func TestSummaryFallsBackOnCapabilityFailure(t *testing.T) {
	var logs bytes.Buffer
	t.Cleanup(telemetry.SetOutput(&logs))

	repo, id := seededRepo(t, "Long text.")
	tests := []struct {
		name string
		cap  *fakeCapability
	}{
		{name: "error", cap: &fakeCapability{err: errors.New("quota exceeded")}},
		{name: "empty response", cap: &fakeCapability{err: llm.ErrEmptyResponse}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &fakeRenderer{}
			svc := &Service{Docs: repo, Capability: tt.cap, Renderer: renderer}
			if _, err := svc.SummaryPDF(context.Background(), id); err != nil {
				t.Fatalf("SummaryPDF: %v", err)
			}
			if renderer.got != Fallback {
				t.Fatalf("expected fallback text, got %q", renderer.got)
			}
		})
	}
	if !bytes.Contains(logs.Bytes(), []byte("summary.fallback")) {
		t.Fatalf("expected fallback to be logged")
	}
}

func TestSummaryKeepsBlankTextFromCapability(t *testing.T) {
	repo, id := seededRepo(t, "Long text.")
	renderer := &fakeRenderer{got: "unset"}
	svc := &Service{Docs: repo, Capability: &fakeCapability{summary: "  \n "}, Renderer: renderer}

	if _, err := svc.SummaryPDF(context.Background(), id); err != nil {
		t.Fatalf("SummaryPDF: %v", err)
	}
	if renderer.got != "" {
		t.Fatalf("expected blank summary rendered as-is, got %q", renderer.got)
	}
}

func TestSummaryErrors(t *testing.T) {
	repo, id := seededRepo(t, "text")

	capability := &fakeCapability{summary: "s"}
	svc := &Service{Docs: repo, Capability: capability, Renderer: &fakeRenderer{}}
	if _, err := svc.SummaryPDF(context.Background(), "0b8e3f0c-3c1e-4c53-9df6-8d2f8a0f2b6e"); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if capability.calls != 0 {
		t.Fatalf("capability must not run for a missing document")
	}
	if _, err := svc.SummaryPDF(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	renderErr := errors.New("font missing")
	svc.Renderer = &fakeRenderer{err: renderErr}
	if _, err := svc.SummaryPDF(context.Background(), id); !errors.Is(err, renderErr) {
		t.Fatalf("expected render error, got %v", err)
	}
}
