package usergate

import (
	"context"
	"errors"

	"github.com/usergate/usergate/reqres"
)

var (
	ErrAvatarNotCached     = errors.New("avatar not cached")
	ErrCacheInconsistent   = errors.New("avatar cache inconsistent")
	ErrUpstreamUnavailable = errors.New("user directory unavailable")
)

// Avatar is the metadata row of a cached avatar. The image bytes themselves
// live in a BlobStore under a key derived from the user id; a row exists if
// and only if the blob does. That pairing is kept by write ordering in
// AvatarCache, not by a transaction.
type Avatar struct {
	UserId UserId
	Hash   string
}

type AvatarStore interface {
	// ByUserId returns the metadata row or ErrAvatarNotCached.
	ByUserId(ctx context.Context, userId UserId) (Avatar, error)

	// Insert adds a new row. User id is a unique key; inserting an already
	// cached id fails with the backing store's own error.
	Insert(ctx context.Context, avatar Avatar) error

	// DeleteByUserId removes the row and reports whether one existed.
	DeleteByUserId(ctx context.Context, userId UserId) (bool, error)
}

type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Directory resolves directory users and downloads resources they reference.
// Implemented by reqres.Client.
type Directory interface {
	UserById(ctx context.Context, userId int64) (reqres.User, error)
	Download(ctx context.Context, url string) ([]byte, error)
}
