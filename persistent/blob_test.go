package persistent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFsBlobStoreRoundTrip(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := &FsBlobStore{Dir: filepath.Join(t.TempDir(), "avatars")}

	image := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46}
	if !assert.NoError(store.Put(ctx, "10", image)) {
		return
	}

	read, err := store.Get(ctx, "10")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(image, read)

	// stored under {dir}/{key}.jpg
	_, err = os.Stat(filepath.Join(store.Dir, "10.jpg"))
	assert.NoError(err)
}

func TestFsBlobStoreGetMissing(t *testing.T) {
	assert := assert.New(t)

	store := &FsBlobStore{Dir: t.TempDir()}
	_, err := store.Get(context.Background(), "404")
	assert.Error(err)
}

func TestFsBlobStoreDelete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := &FsBlobStore{Dir: t.TempDir()}
	if !assert.NoError(store.Put(ctx, "3", []byte("image"))) {
		return
	}
	if !assert.NoError(store.Delete(ctx, "3")) {
		return
	}

	_, err := store.Get(ctx, "3")
	assert.Error(err)
	assert.Error(store.Delete(ctx, "3"))
}

func TestFsBlobStoreDirBlockedByFile(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	blocked := filepath.Join(t.TempDir(), "avatars")
	if !assert.NoError(os.WriteFile(blocked, []byte("not a directory"), 0o644)) {
		return
	}

	store := &FsBlobStore{Dir: blocked}
	assert.ErrorIs(store.Put(ctx, "1", []byte("image")), ErrBlobDirBlocked)
	_, err := store.Get(ctx, "1")
	assert.ErrorIs(err, ErrBlobDirBlocked)
	assert.ErrorIs(store.Delete(ctx, "1"), ErrBlobDirBlocked)
}

func TestFsBlobStoreCreatesDir(t *testing.T) {
	assert := assert.New(t)

	dir := filepath.Join(t.TempDir(), "nested", "avatars")
	store := &FsBlobStore{Dir: dir}
	if !assert.NoError(store.Put(context.Background(), "5", []byte("image"))) {
		return
	}

	info, err := os.Stat(dir)
	if !assert.NoError(err) {
		return
	}
	assert.True(info.IsDir())
}
