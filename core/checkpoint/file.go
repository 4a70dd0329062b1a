package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps one JSON file per namespace in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the directory if needed and returns a backend for it.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint dir %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(namespace string) string {
	return filepath.Join(b.dir, namespace+".json")
}

func (b *FileBackend) Read(_ context.Context, namespace string) ([]byte, error) {
	data, err := os.ReadFile(b.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write replaces the file atomically through a temp file and rename.
func (b *FileBackend) Write(_ context.Context, namespace string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, namespace+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, b.path(namespace))
}

func (b *FileBackend) Delete(_ context.Context, namespace string) error {
	err := os.Remove(b.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
