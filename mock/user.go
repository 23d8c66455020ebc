package mock

import (
	"context"

	"github.com/usergate/usergate"
)

type UserStore struct {
	CreateFn func(ctx context.Context, user usergate.User) error
}

func (s UserStore) Create(ctx context.Context, user usergate.User) error {
	return s.CreateFn(ctx, user)
}
