package mock

import (
	"context"

	"github.com/usergate/usergate/reqres"
)

type Directory struct {
	UserByIdFn func(ctx context.Context, userId int64) (reqres.User, error)

	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (d Directory) UserById(ctx context.Context, userId int64) (reqres.User, error) {
	return d.UserByIdFn(ctx, userId)
}

func (d Directory) Download(ctx context.Context, url string) ([]byte, error) {
	return d.DownloadFn(ctx, url)
}
