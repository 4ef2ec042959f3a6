package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"docqa-backend/internal/shared/telemetry"
	"docqa-backend/internal/shared/util"
)

// Service contains business logic for documents.
type Service struct {
	Repo Repo
}

// Upload decodes the payload as UTF-8 and stores it, returning the new id.
func (s *Service) Upload(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: read upload: %w", ErrInvalidInput, err)
	}
	if !utf8.Valid(data) {
		return "", ErrDecode
	}
	id, err := s.Repo.Put(ctx, string(data))
	if err != nil {
		return "", err
	}
	telemetry.Info("document.stored", map[string]any{
		"doc_id": id,
		"bytes":  len(data),
		"sha256": util.ContentDigest(data),
	})
	return id, nil
}

// Get fetches a document for the ask and summary operations.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, fmt.Errorf("%w: doc_id is required", ErrInvalidInput)
	}
	return s.Repo.Get(ctx, id)
}
