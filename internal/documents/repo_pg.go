package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Put inserts a new document row.
func (r *PGRepo) Put(ctx context.Context, text string) (string, error) {
	const query = `
INSERT INTO documents (id, text, created_at)
VALUES ($1, $2, $3)`

	id := uuid.NewString()
	if _, err := r.DB.ExecContext(ctx, query, id, text, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("%w: insert document: %w", ErrStorageUnavailable, err)
	}
	return id, nil
}

// Get fetches a document by id. Ids that are not UUIDs never reach the database.
func (r *PGRepo) Get(ctx context.Context, id string) (Document, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Document{}, ErrNotFound
	}

	const query = `
SELECT id, text, created_at
FROM documents
WHERE id = $1
LIMIT 1`
	var doc Document
	err = r.DB.QueryRowContext(ctx, query, parsed.String()).Scan(&doc.ID, &doc.Text, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("%w: select document: %w", ErrStorageUnavailable, err)
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
