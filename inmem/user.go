package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/usergate/usergate"
)

type UserStore struct {
	users map[usergate.UserId]usergate.User
	mutex sync.RWMutex
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: map[usergate.UserId]usergate.User{},
	}
}

var _ usergate.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, user usergate.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.users[user.Id]; ok {
		return usergate.ErrUserExists
	}
	user.CreatedAt = time.Now()
	s.users[user.Id] = user
	return nil
}

func (s *UserStore) ById(ctx context.Context, userId usergate.UserId) (usergate.User, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[userId]
	return u, ok
}
