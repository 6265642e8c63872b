package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreUpload(t *testing.T) {
	tempDir := t.TempDir()
	uploadDir := t.TempDir()

	staged := filepath.Join(tempDir, "avatar.png")
	if err := os.WriteFile(staged, []byte("png-bytes"), 0o600); err != nil {
		t.Fatalf("stage file: %v", err)
	}

	store := NewLocalStore(uploadDir, "/public/uploads")
	url, err := store.Upload(context.Background(), staged)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(url, "/public/uploads/") {
		t.Fatalf("expected public URL, got %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("expected extension preserved, got %q", url)
	}

	name := strings.TrimPrefix(url, "/public/uploads/")
	data, err := os.ReadFile(filepath.Join(uploadDir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Fatal("expected staged temp file to be removed")
	}
}

func TestLocalStoreUploadMissingFile(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/public/uploads")
	if _, err := store.Upload(context.Background(), filepath.Join(t.TempDir(), "absent.jpg")); err == nil {
		t.Fatal("expected error for missing source file")
	}
}
