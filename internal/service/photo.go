package service

import (
	"context"

	"github.com/pageza/recipe-share/backend/internal/logging"
	"github.com/pageza/recipe-share/backend/internal/storage"
)

const (
	recipePhotoPrefix  = "recipes"
	profilePhotoPrefix = "profiles"
)

// storePhoto uploads photo under prefix. It runs before any database write so
// that a failed upload leaves nothing behind.
func storePhoto(ctx context.Context, blobs storage.BlobStore, prefix string, photo *storage.Upload) (storage.Object, error) {
	if blobs == nil {
		return storage.Object{}, ErrInternal("failed to store photo", storage.ErrUnavailable)
	}
	if !storage.AllowedContentType(photo.ContentType) {
		return storage.Object{}, ErrValidation("photo must be a JPEG, PNG or GIF image")
	}
	obj, err := blobs.Put(ctx, storage.NewKey(prefix, photo.ContentType), photo)
	if err != nil {
		return storage.Object{}, ErrInternal("failed to store photo", err)
	}
	return obj, nil
}

// discardPhoto removes a blob that is no longer referenced. Failures are
// logged and otherwise ignored.
func discardPhoto(ctx context.Context, blobs storage.BlobStore, key string) {
	if blobs == nil || key == "" {
		return
	}
	if err := blobs.Delete(context.WithoutCancel(ctx), key); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to delete photo")
	}
}
