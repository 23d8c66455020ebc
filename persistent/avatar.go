package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/usergate/usergate"
)

type Avatar struct {
	bun.BaseModel `bun:"table:avatar"`

	UserId int64  `bun:",pk"`
	Hash   string `bun:",notnull"`
}

func (a Avatar) ToDomain() usergate.Avatar {
	return usergate.Avatar{
		UserId: usergate.UserId(a.UserId),
		Hash:   a.Hash,
	}
}

type AvatarStore struct {
	DB *bun.DB
}

var _ usergate.AvatarStore = (*AvatarStore)(nil)

func (s *AvatarStore) ByUserId(ctx context.Context, userId usergate.UserId) (usergate.Avatar, error) {
	avatar := new(Avatar)
	err := s.DB.NewSelect().
		Model(avatar).
		Where(`user_id=?`, userId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usergate.Avatar{}, usergate.ErrAvatarNotCached
		}
		return usergate.Avatar{}, fmt.Errorf("select avatar: %w", err)
	}
	return avatar.ToDomain(), nil
}

func (s *AvatarStore) Insert(ctx context.Context, a usergate.Avatar) error {
	_, err := s.DB.NewInsert().
		Model(&Avatar{UserId: int64(a.UserId), Hash: a.Hash}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert avatar: %w", err)
	}
	return nil
}

func (s *AvatarStore) DeleteByUserId(ctx context.Context, userId usergate.UserId) (bool, error) {
	res, err := s.DB.NewDelete().
		Model((*Avatar)(nil)).
		Where(`user_id=?`, userId).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete avatar: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
