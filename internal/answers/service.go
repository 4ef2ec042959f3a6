package answers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/llm"
)

// NotAvailable is returned in place of a blank answer.
const NotAvailable = "Answer not available"

// ErrInvalidInput marks requests missing doc_id or question.
var ErrInvalidInput = errors.New("invalid input")

// DocumentGetter loads the document a question is asked against.
type DocumentGetter interface {
	Get(ctx context.Context, id string) (documents.Document, error)
}

// Service answers questions about stored documents.
type Service struct {
	Docs       DocumentGetter
	Capability llm.Capability
}

// Ask fetches the document and asks the capability. Blank answers become NotAvailable.
func (s *Service) Ask(ctx context.Context, docID, question string) (llm.AnswerResult, error) {
	if strings.TrimSpace(docID) == "" || strings.TrimSpace(question) == "" {
		return llm.AnswerResult{}, fmt.Errorf("%w: doc_id and question are required", ErrInvalidInput)
	}

	doc, err := s.Docs.Get(ctx, docID)
	if err != nil {
		return llm.AnswerResult{}, err
	}

	res, err := s.Capability.Answer(ctx, doc.Text, question)
	if err != nil {
		return llm.AnswerResult{}, fmt.Errorf("answer question: %w", err)
	}
	res.Answer = strings.TrimSpace(res.Answer)
	if res.Answer == "" {
		return llm.AnswerResult{Answer: NotAvailable}, nil
	}
	return res, nil
}
