package documents

import "errors"

var (
	// ErrNotFound covers both unknown and malformed document ids.
	ErrNotFound           = errors.New("document not found")
	ErrDecode             = errors.New("document is not valid utf-8")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("document storage unavailable")
)
