// Package storage is the object-storage boundary for profile images. Handlers
// stage multipart uploads on local disk and hand the path to an Uploader,
// which returns the public URL stored on the user record.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// LocalStore keeps uploads on disk under Dir and serves them under BaseURL.
// It stands in for a hosted object store behind the same interface.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: baseURL}
}

func (s *LocalStore) Upload(_ context.Context, localPath string) (string, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(localPath)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	// The staged temp file is no longer needed once the copy landed.
	_ = os.Remove(localPath)

	return fmt.Sprintf("%s/%s", s.BaseURL, name), nil
}
