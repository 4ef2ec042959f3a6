package documents

import "time"

// Document is an uploaded text. Documents are never modified after Put.
type Document struct {
	ID        string
	Text      string
	CreatedAt time.Time
}
