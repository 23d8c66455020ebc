package rest

import (
	"context"
	"encoding/base64"
	"io/ioutil"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/usergate/usergate"
	"github.com/usergate/usergate/inmem"
	"github.com/usergate/usergate/mock"
	"github.com/usergate/usergate/reqres"
)

func avatarTestApp(cache *usergate.AvatarCache) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller := AvatarController{Cache: cache}
	controller.InstallTo(app)
	return app
}

func TestAvatarControllerGetAndDelete(t *testing.T) {
	assert := assert.New(t)

	image := []byte{0xff, 0xd8, 0xff, 0xe0}
	cache := &usergate.AvatarCache{
		Store: inmem.NewAvatarStore(),
		Blobs: inmem.NewBlobStore(),
		Directory: mock.Directory{
			UserByIdFn: func(ctx context.Context, userId int64) (reqres.User, error) {
				return reqres.User{
					Id:        userId,
					Email:     "tracey.ramos@reqres.in",
					FirstName: "Tracey",
					LastName:  "Ramos",
					AvatarUrl: "https://reqres.in/img/faces/6-image.jpg",
				}, nil
			},
			DownloadFn: func(ctx context.Context, url string) ([]byte, error) {
				return image, nil
			},
		},
	}
	app := avatarTestApp(cache)

	expectedBody := `{"base64":"` + base64.StdEncoding.EncodeToString(image) + `","cached":false}`

	resp, err := app.Test(httptest.NewRequest("GET", "/user/6/avatar", nil))
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fiber.StatusOK, resp.StatusCode)
	assert.Equal(expectedBody, string(body))

	// second request is served from the cache
	resp, err = app.Test(httptest.NewRequest("GET", "/user/6/avatar", nil))
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	body, err = ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(`{"base64":"`+base64.StdEncoding.EncodeToString(image)+`","cached":true}`, string(body))

	resp, err = app.Test(httptest.NewRequest("DELETE", "/user/6/avatar", nil))
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	body, err = ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fiber.StatusOK, resp.StatusCode)
	assert.Equal(`{"ok":true}`, string(body))
}

func TestAvatarControllerDeleteNotCached(t *testing.T) {
	assert := assert.New(t)

	cache := &usergate.AvatarCache{
		Store:     inmem.NewAvatarStore(),
		Blobs:     inmem.NewBlobStore(),
		Directory: mock.Directory{},
	}
	app := avatarTestApp(cache)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/user/6/avatar", nil))
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(JsonErrorMessageResponse("could not delete the avatar, it was not cached before"),
		string(body))
}

func TestAvatarControllerUpstreamUnavailable(t *testing.T) {
	assert := assert.New(t)

	cache := &usergate.AvatarCache{
		Store: inmem.NewAvatarStore(),
		Blobs: inmem.NewBlobStore(),
		Directory: mock.Directory{
			UserByIdFn: func(ctx context.Context, userId int64) (reqres.User, error) {
				return reqres.User{}, reqres.ErrUnexpectedResponse
			},
		},
	}
	app := avatarTestApp(cache)

	resp, err := app.Test(httptest.NewRequest("GET", "/user/6/avatar", nil))
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	assert.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestAvatarControllerInconsistencyIsServerFault(t *testing.T) {
	assert := assert.New(t)

	store := inmem.NewAvatarStore()
	if !assert.NoError(store.Insert(context.Background(), usergate.Avatar{UserId: 6, Hash: "cc"})) {
		return
	}
	// metadata row present, blob missing
	cache := &usergate.AvatarCache{
		Store:     store,
		Blobs:     inmem.NewBlobStore(),
		Directory: mock.Directory{},
	}
	app := avatarTestApp(cache)

	resp, err := app.Test(httptest.NewRequest("GET", "/user/6/avatar", nil))
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()
	assert.Equal(fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAvatarControllerInvalidUserId(t *testing.T) {
	assert := assert.New(t)

	app := avatarTestApp(&usergate.AvatarCache{
		Store:     inmem.NewAvatarStore(),
		Blobs:     inmem.NewBlobStore(),
		Directory: mock.Directory{},
	})

	for _, path := range []string{"/user/abc/avatar", "/user/-5/avatar", "/user/0/avatar"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if !assert.NoError(err) {
			return
		}
		resp.Body.Close()
		assert.Equal(fiber.StatusBadRequest, resp.StatusCode, "path: %s", path)
	}
}
