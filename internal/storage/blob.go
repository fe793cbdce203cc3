// Package storage holds uploaded photos in an object store. Objects are
// addressed by an opaque key; the public URL is derived from the key.
package storage

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/google/uuid"
)

// ErrUnavailable is returned when no blob store is configured.
var ErrUnavailable = errors.New("blob store unavailable")

// Object references a stored blob.
type Object struct {
	URL string
	Key string
}

// Upload is a photo waiting to be stored. ContentType is the sniffed type.
type Upload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// BlobStore stores and removes objects.
type BlobStore interface {
	Put(ctx context.Context, key string, upload *Upload) (Object, error)
	Delete(ctx context.Context, key string) error
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// AllowedContentType reports whether photos of this type are accepted.
func AllowedContentType(contentType string) bool {
	_, ok := extensions[contentType]
	return ok
}

// NewKey returns a fresh key under prefix, e.g. "recipes/<uuid>.jpg".
func NewKey(prefix, contentType string) string {
	return path.Join(prefix, uuid.New().String()+extensions[contentType])
}
