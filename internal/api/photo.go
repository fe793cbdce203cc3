package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/storage"
)

// MaxPhotoSize is the largest accepted photo upload.
const MaxPhotoSize = 5 << 20

var (
	errPhotoTooLarge = errors.New("photo must be 5MB or smaller")
	errPhotoType     = errors.New("photo must be a JPEG, PNG or GIF image")
)

// readPhoto returns the uploaded file in field, or nil when the request has
// none. The content type is sniffed from the bytes, not taken from the client.
func readPhoto(c *gin.Context, field string) (*storage.Upload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size > MaxPhotoSize {
		return nil, errPhotoTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxPhotoSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxPhotoSize {
		return nil, errPhotoTooLarge
	}

	contentType := http.DetectContentType(data)
	if !storage.AllowedContentType(contentType) {
		return nil, errPhotoType
	}
	return &storage.Upload{
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}
