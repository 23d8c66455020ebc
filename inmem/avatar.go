package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/usergate/usergate"
)

type AvatarStore struct {
	avatars map[usergate.UserId]usergate.Avatar
	mutex   sync.RWMutex
}

func NewAvatarStore() *AvatarStore {
	return &AvatarStore{
		avatars: map[usergate.UserId]usergate.Avatar{},
	}
}

var _ usergate.AvatarStore = (*AvatarStore)(nil)

func (s *AvatarStore) ByUserId(ctx context.Context, userId usergate.UserId) (usergate.Avatar, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	avatar, ok := s.avatars[userId]
	if !ok {
		return usergate.Avatar{}, usergate.ErrAvatarNotCached
	}
	return avatar, nil
}

func (s *AvatarStore) Insert(ctx context.Context, avatar usergate.Avatar) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.avatars[avatar.UserId]; ok {
		return fmt.Errorf("duplicate avatar key %d", avatar.UserId)
	}
	s.avatars[avatar.UserId] = avatar
	return nil
}

func (s *AvatarStore) DeleteByUserId(ctx context.Context, userId usergate.UserId) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, ok := s.avatars[userId]
	delete(s.avatars, userId)
	return ok, nil
}
