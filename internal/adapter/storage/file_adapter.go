package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rl1809/stock-gen/internal/core/domain"
)

// FileAdapter persists the stock store as one JSON document on disk. Save
// writes a temp file in the same directory, syncs it, and renames it over
// the old document, so a crash mid-write never leaves a partial document
// behind.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (f *FileAdapter) Load(ctx context.Context) (domain.Store, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		store := domain.Store{}
		if err := f.Save(ctx, store); err != nil {
			return nil, fmt.Errorf("bootstrap stock file: %w", err)
		}
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stock file: %w", err)
	}
	return domain.DecodeStore(data)
}

func (f *FileAdapter) Save(ctx context.Context, store domain.Store) error {
	data, err := domain.EncodeStore(store, true)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".stock-*.json")
	if err != nil {
		return fmt.Errorf("create temp stock file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write stock file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync stock file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close stock file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace stock file: %w", err)
	}
	return nil
}
