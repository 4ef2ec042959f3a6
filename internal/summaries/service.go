package summaries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/llm"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/telemetry"
)

// Fallback replaces the summary whenever the capability fails or returns nothing.
const Fallback = "Error in generating summary"

// ErrInvalidInput marks requests without a doc_id.
var ErrInvalidInput = errors.New("invalid input")

// DocumentGetter loads the document to summarize.
type DocumentGetter interface {
	Get(ctx context.Context, id string) (documents.Document, error)
}

// PDFRenderer turns summary text into PDF bytes.
type PDFRenderer interface {
	SummaryPDF(text string) ([]byte, error)
}

// Service builds summary PDFs for stored documents.
type Service struct {
	Docs       DocumentGetter
	Capability llm.Capability
	Renderer   PDFRenderer
}

// Summary returns the summary text for docID. Capability failures never
// surface as errors; the fixed fallback text is returned instead.
func (s *Service) Summary(ctx context.Context, docID string) (string, error) {
	if strings.TrimSpace(docID) == "" {
		return "", fmt.Errorf("%w: doc_id is required", ErrInvalidInput)
	}
	doc, err := s.Docs.Get(ctx, docID)
	if err != nil {
		return "", err
	}

	summary, err := s.Capability.Summarize(ctx, doc.Text)
	if err != nil {
		telemetry.Warn("summary.fallback", map[string]any{"doc_id": docID, "err": err.Error()})
		metrics.IncSummariesFallback()
		return Fallback, nil
	}
	return strings.TrimSpace(summary), nil
}

// SummaryPDF renders the summary of docID as a PDF held in memory.
func (s *Service) SummaryPDF(ctx context.Context, docID string) ([]byte, error) {
	summary, err := s.Summary(ctx, docID)
	if err != nil {
		return nil, err
	}
	out, err := s.Renderer.SummaryPDF(summary)
	if err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	return out, nil
}
