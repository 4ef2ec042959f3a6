package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "DOCUMENT_STORE", "LLM_PROVIDER", "CORS_ALLOW_ORIGINS", "SUMMARY_MAX_SENTENCES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.DocumentStore != "memory" {
		t.Fatalf("expected memory store, got %q", cfg.DocumentStore)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected gemini provider, got %q", cfg.LLMProvider)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("expected wildcard CORS origin, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.SummaryMaxSentences != 5 {
		t.Fatalf("expected 5 summary sentences, got %d", cfg.SummaryMaxSentences)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "MONGODB_COLLECTION=from_file\nLLM_PROVIDER=openai\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("MONGODB_COLLECTION", "")
	os.Unsetenv("MONGODB_COLLECTION")

	cfg := Load()
	if cfg.MongoCollection != "from_file" {
		t.Fatalf("expected collection from .env, got %q", cfg.MongoCollection)
	}
	if cfg.LLMProvider != "ollama" {
		t.Fatalf("expected environment to win over .env, got %q", cfg.LLMProvider)
	}
}

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{name: "store mongodb", fn: normalizeDocumentStore, in: "MongoDB", want: "mongo"},
		{name: "store pg", fn: normalizeDocumentStore, in: "pg", want: "postgres"},
		{name: "store empty", fn: normalizeDocumentStore, in: " ", want: "memory"},
		{name: "store unknown passes through", fn: normalizeDocumentStore, in: "Postgress", want: "postgress"},
		{name: "object unknown passes through", fn: normalizeStoreType, in: "GCS", want: "gcs"},
		{name: "provider local", fn: normalizeProvider, in: " local ", want: "extractive"},
		{name: "provider openai", fn: normalizeProvider, in: "OpenAI", want: "openai"},
		{name: "provider empty", fn: normalizeProvider, in: "", want: "gemini"},
		{name: "provider unknown passes through", fn: normalizeProvider, in: " Anthropic ", want: "anthropic"},
		{name: "env prod", fn: normalizeEnv, in: "prod", want: "production"},
		{name: "object s3", fn: normalizeStoreType, in: "S3", want: "s3"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	if got := getEnvInt("MAX_UPLOAD_BYTES", 42); got != 42 {
		t.Fatalf("expected fallback 42, got %d", got)
	}
}

func TestLoadKeepsUnrecognisedChoices(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("DOCUMENT_STORE", "postgress")
	t.Setenv("OBJECT_STORE", "gcs")

	cfg := Load()
	if cfg.LLMProvider != "anthropic" {
		t.Fatalf("expected provider to pass through, got %q", cfg.LLMProvider)
	}
	if cfg.DocumentStore != "postgress" {
		t.Fatalf("expected store to pass through, got %q", cfg.DocumentStore)
	}
	if cfg.ObjectStoreType != "gcs" {
		t.Fatalf("expected object store to pass through, got %q", cfg.ObjectStoreType)
	}
}
