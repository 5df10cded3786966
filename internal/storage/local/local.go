// Package local provides a filesystem-backed implementation of the
// storage contract, writing objects under a base directory.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/immiform/immiform/internal/storage"
)

type localStorage struct {
	baseDir string
}

// NewLocalStorage creates an ObjectStorage that stores objects as files
// under baseDir. The directory is created if it does not exist.
func NewLocalStorage(baseDir string) (storage.ObjectStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("local storage requires a base directory")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &localStorage{baseDir: baseDir}, nil
}

func (l *localStorage) Upload(ctx context.Context, input storage.UploadInput) (*storage.UploadOutput, error) {
	if input.Key == "" {
		return nil, fmt.Errorf("upload requires a key")
	}

	path := filepath.Join(l.baseDir, filepath.FromSlash(input.Key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating object directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating object file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, input.Body); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing object file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return nil, fmt.Errorf("syncing object file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &storage.UploadOutput{Location: abs}, nil
}

func (l *localStorage) GetURL(ctx context.Context, key string) (string, error) {
	path := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("object not found: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs), nil
}
