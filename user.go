package usergate

import (
	"context"
	"errors"
	"time"
)

var ErrUserExists = errors.New("user already exists")

type UserId int64

type Email string

// User is the locally persisted mirror of a directory user. Rows are written
// once on registration and never updated; profile reads go to the remote
// directory instead.
type User struct {
	Id        UserId
	CreatedAt time.Time
	Email     Email
	FirstName string
	LastName  string
	AvatarUrl string
}

type UserStore interface {
	// Create inserts a new user row. User id is a unique key: inserting an
	// already registered id fails with ErrUserExists.
	Create(ctx context.Context, user User) error
}
