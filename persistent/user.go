package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/usergate/usergate"
)

type User struct {
	bun.BaseModel `bun:"table:user"`

	Id        int64     `bun:",pk"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	Email     string    `bun:"email,notnull"`
	FirstName string    `bun:",notnull"`
	LastName  string    `bun:",notnull"`
	AvatarUrl string    `bun:",notnull"`
}

func (u User) ToDomain() usergate.User {
	return usergate.User{
		Id:        usergate.UserId(u.Id),
		CreatedAt: u.CreatedAt,
		Email:     usergate.Email(u.Email),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarUrl: u.AvatarUrl,
	}
}

type UserStore struct {
	DB *bun.DB
}

var _ usergate.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, u usergate.User) error {
	user := &User{
		Id:        int64(u.Id),
		Email:     string(u.Email),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarUrl: u.AvatarUrl,
	}
	_, err := s.DB.NewInsert().
		Model(user).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return usergate.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
