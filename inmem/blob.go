package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/usergate/usergate"
)

type BlobStore struct {
	blobs map[string][]byte
	mutex sync.RWMutex
}

func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs: map[string][]byte{},
	}
}

var _ usergate.BlobStore = (*BlobStore)(nil)

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", key)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}

func (s *BlobStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.blobs[key]; !ok {
		return fmt.Errorf("blob %s not found", key)
	}
	delete(s.blobs, key)
	return nil
}
