package persistent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/usergate/usergate"
)

// ErrBlobDirBlocked means the configured blob directory path exists but is a
// regular file. That is a deployment problem, not a per-request one.
var ErrBlobDirBlocked = errors.New("blob directory path blocked by a file")

const blobExtension = ".jpg"

// FsBlobStore stores avatar blobs as plain files, one per key, under Dir.
// The directory is created on first use. Concurrent writers to the same key
// race at the filesystem level; callers are expected to tolerate that.
type FsBlobStore struct {
	Dir string
}

var _ usergate.BlobStore = (*FsBlobStore)(nil)

func (s *FsBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *FsBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

func (s *FsBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

func (s *FsBlobStore) path(key string) string {
	return filepath.Join(s.Dir, key+blobExtension)
}

func (s *FsBlobStore) ensureDir() error {
	info, err := os.Stat(s.Dir)
	if err != nil {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("create blob directory: %w", err)
		}
		return nil
	}
	if !info.IsDir() {
		return ErrBlobDirBlocked
	}
	return nil
}
