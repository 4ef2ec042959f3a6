package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"docqa-backend/internal/shared/storage/object"
)

const documentKeyPrefix = "documents/"

// ObjectRepo stores each document as a single text object.
type ObjectRepo struct {
	Store object.ObjectStore
}

// Put writes the text to documents/<id>.txt.
func (r *ObjectRepo) Put(ctx context.Context, text string) (string, error) {
	id := uuid.NewString()
	if _, err := r.Store.Put(ctx, documentKey(id), "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("%w: put object: %w", ErrStorageUnavailable, err)
	}
	return id, nil
}

// Get reads the object for id. CreatedAt is not tracked by this backend.
func (r *ObjectRepo) Get(ctx context.Context, id string) (Document, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Document{}, ErrNotFound
	}
	id = parsed.String()

	rc, err := r.Store.Open(ctx, documentKey(id))
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("%w: open object: %w", ErrStorageUnavailable, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Document{}, fmt.Errorf("%w: read object: %w", ErrStorageUnavailable, err)
	}
	return Document{ID: id, Text: string(data)}, nil
}

func documentKey(id string) string {
	return documentKeyPrefix + id + ".txt"
}

var _ Repo = (*ObjectRepo)(nil)
