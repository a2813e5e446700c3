package utils

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FileStore persists generated artifacts (QR images) and hands back the
// public reference under which they are served.
type FileStore interface {
	Save(name string, data []byte) (string, error)
	Delete(ref string) error
}

// LocalFileStore writes artifacts to a directory served at /uploads.
type LocalFileStore struct {
	Dir string
}

func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileStore{Dir: dir}, nil
}

func (s *LocalFileStore) Save(name string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", err
	}
	return path.Join("/uploads", name), nil
}

// Delete removes the artifact behind a reference returned by Save. A
// missing file is not an error; the record it backed is already gone.
func (s *LocalFileStore) Delete(ref string) error {
	err := os.Remove(filepath.Join(s.Dir, path.Base(ref)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
