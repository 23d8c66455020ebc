package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/buntdb"
	"github.com/usergate/usergate"
)

// KvAvatarStore keeps avatar metadata in buntdb. It is the embedded
// counterpart of AvatarStore for running the cache without Postgres and
// follows the same contract: unique insert, find-and-delete.
type KvAvatarStore struct {
	Buntdb *buntdb.DB
}

var _ usergate.AvatarStore = (*KvAvatarStore)(nil)

type kvAvatar struct {
	UserId int64  `json:"userId"`
	Hash   string `json:"hash"`
}

func kvAvatarKey(userId usergate.UserId) string {
	return "avatar:" + strconv.FormatInt(int64(userId), 10)
}

func (s *KvAvatarStore) ByUserId(ctx context.Context, userId usergate.UserId) (usergate.Avatar, error) {
	var avatar kvAvatar
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		serialized, err := tx.Get(kvAvatarKey(userId))
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(serialized), &avatar); err != nil {
			return fmt.Errorf("deserialize avatar: %s", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return usergate.Avatar{}, usergate.ErrAvatarNotCached
		}
		return usergate.Avatar{}, fmt.Errorf("bunt view: %s", err)
	}
	return usergate.Avatar{UserId: usergate.UserId(avatar.UserId), Hash: avatar.Hash}, nil
}

func (s *KvAvatarStore) Insert(ctx context.Context, a usergate.Avatar) error {
	serialized, err := json.Marshal(&kvAvatar{UserId: int64(a.UserId), Hash: a.Hash})
	if err != nil {
		return fmt.Errorf("avatar serialize: %s", err)
	}

	err = s.Buntdb.Update(func(tx *buntdb.Tx) error {
		key := kvAvatarKey(a.UserId)
		_, err := tx.Get(key)
		switch {
		case err == nil:
			return fmt.Errorf("duplicate avatar key %s", key)
		case !errors.Is(err, buntdb.ErrNotFound):
			return fmt.Errorf("get avatar: %w", err)
		}

		_, _, err = tx.Set(key, string(serialized), nil)
		if err != nil {
			return fmt.Errorf("set avatar: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bunt update: %s", err)
	}
	return nil
}

func (s *KvAvatarStore) DeleteByUserId(ctx context.Context, userId usergate.UserId) (bool, error) {
	deleted := false
	err := s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(kvAvatarKey(userId))
		if err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return false, fmt.Errorf("bunt update: %s", err)
	}
	return deleted, nil
}
