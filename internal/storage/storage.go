package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store is the blob store contract. Refs are the names passed to Save;
// callers persist them and never inspect their structure.
type Store interface {
	Save(name string, data []byte) (string, error)
	// Delete is idempotent; deleting a missing blob is not an error.
	Delete(ref string) error
	Open(ref string) ([]byte, error)
}

// ObjectName builds a collision-resistant blob name sharded by year/month,
// e.g. "vehicles/2026/08/3f2a....webp". The original upload name is discarded.
func ObjectName(prefix, ext string) string {
	now := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, now.Year(), int(now.Month()), uuid.New().String(), ext)
}

type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(name string, data []byte) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile -> %w", err)
	}

	return name, nil
}

func (s *LocalStore) Delete(ref string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

func (s *LocalStore) Open(ref string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile -> %w", err)
	}

	return data, nil
}
