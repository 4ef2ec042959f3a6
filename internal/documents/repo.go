package documents

import "context"

// Repo persists documents and hands out their ids.
type Repo interface {
	// Put stores text and returns a freshly generated id.
	Put(ctx context.Context, text string) (string, error)
	// Get returns ErrNotFound for unknown or malformed ids.
	Get(ctx context.Context, id string) (Document, error)
}
