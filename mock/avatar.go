package mock

import (
	"context"

	"github.com/usergate/usergate"
)

type AvatarStore struct {
	ByUserIdFn func(ctx context.Context, userId usergate.UserId) (usergate.Avatar, error)

	InsertFn func(ctx context.Context, avatar usergate.Avatar) error

	DeleteByUserIdFn func(ctx context.Context, userId usergate.UserId) (bool, error)
}

func (s AvatarStore) ByUserId(ctx context.Context, userId usergate.UserId) (usergate.Avatar, error) {
	return s.ByUserIdFn(ctx, userId)
}

func (s AvatarStore) Insert(ctx context.Context, avatar usergate.Avatar) error {
	return s.InsertFn(ctx, avatar)
}

func (s AvatarStore) DeleteByUserId(ctx context.Context, userId usergate.UserId) (bool, error) {
	return s.DeleteByUserIdFn(ctx, userId)
}

type BlobStore struct {
	GetFn func(ctx context.Context, key string) ([]byte, error)

	PutFn func(ctx context.Context, key string, data []byte) error

	DeleteFn func(ctx context.Context, key string) error
}

func (s BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

func (s BlobStore) Put(ctx context.Context, key string, data []byte) error {
	return s.PutFn(ctx, key, data)
}

func (s BlobStore) Delete(ctx context.Context, key string) error {
	return s.DeleteFn(ctx, key)
}
