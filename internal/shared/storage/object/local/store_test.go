package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"docqa-backend/internal/shared/storage/object"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "documents/abc.txt", "text/plain; charset=utf-8", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("hello world")) {
		t.Fatalf("unexpected size %d", n)
	}

	rc, err := store.Open(ctx, "documents/abc.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "hello world" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "documents/missing.txt")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../outside.txt", "/etc/passwd", ""} {
		if _, err := store.Put(context.Background(), key, "text/plain", strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
