package usergate

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/minio/sha256-simd"
)

type CachedAvatar struct {
	// Content is the image payload, base64 encoded.
	Content   string
	FromCache bool
}

// AvatarCache decides whether a cached avatar already exists for a user and,
// if not, fetches it from the directory and records it in the metadata store
// and the blob store. Metadata is written before the blob, so a metadata row
// is the single hit signal: a row without a readable blob is a detectable
// inconsistency, never a silent re-fetch.
//
// There is no retry, no repair and no per-user serialization. Two concurrent
// first fetches of the same user may both reach Insert; the store's unique
// key lets exactly one through and the loser gets the raw store error.
type AvatarCache struct {
	Store     AvatarStore
	Blobs     BlobStore
	Directory Directory
}

func (c *AvatarCache) GetOrFetch(ctx context.Context, userId UserId) (CachedAvatar, error) {
	avatar, err := c.Store.ByUserId(ctx, userId)
	switch {
	case err == nil:
		image, err := c.Blobs.Get(ctx, BlobKey(avatar.UserId))
		if err != nil {
			return CachedAvatar{}, fmt.Errorf("%w: read blob: %s", ErrCacheInconsistent, err)
		}
		return CachedAvatar{Content: base64.StdEncoding.EncodeToString(image), FromCache: true}, nil
	case errors.Is(err, ErrAvatarNotCached):
		return c.fetchAndStore(ctx, userId)
	default:
		return CachedAvatar{}, fmt.Errorf("avatar by user id: %w", err)
	}
}

func (c *AvatarCache) fetchAndStore(ctx context.Context, userId UserId) (CachedAvatar, error) {
	user, err := c.Directory.UserById(ctx, int64(userId))
	if err != nil {
		return CachedAvatar{}, fmt.Errorf("%w: user lookup: %s", ErrUpstreamUnavailable, err)
	}
	image, err := c.Directory.Download(ctx, user.AvatarUrl)
	if err != nil {
		return CachedAvatar{}, fmt.Errorf("%w: avatar download: %s", ErrUpstreamUnavailable, err)
	}

	sum := sha256.Sum256(image)
	avatar := Avatar{UserId: userId, Hash: hex.EncodeToString(sum[:])}
	if err := c.Store.Insert(ctx, avatar); err != nil {
		return CachedAvatar{}, fmt.Errorf("insert avatar: %w", err)
	}
	if err := c.Blobs.Put(ctx, BlobKey(userId), image); err != nil {
		// the metadata row stays behind; the next lookup of this user
		// surfaces it as ErrCacheInconsistent
		return CachedAvatar{}, fmt.Errorf("write blob: %w", err)
	}
	return CachedAvatar{Content: base64.StdEncoding.EncodeToString(image), FromCache: false}, nil
}

func (c *AvatarCache) Delete(ctx context.Context, userId UserId) error {
	deleted, err := c.Store.DeleteByUserId(ctx, userId)
	if err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	if !deleted {
		return ErrAvatarNotCached
	}
	if err := c.Blobs.Delete(ctx, BlobKey(userId)); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// BlobKey maps a user id to its blob store key.
func BlobKey(userId UserId) string {
	return strconv.FormatInt(int64(userId), 10)
}
