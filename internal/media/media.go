// Package media moves uploaded images to the media host and resolves the
// image URL a document should store.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"clinic-content-api/internal/domain"
)

var (
	// ErrUpload wraps any failure talking to the media host.
	ErrUpload = errors.New("image upload failed")
	// ErrInvalidImage is returned when an uploaded file cannot be decoded.
	ErrInvalidImage error = &domain.ValidationError{Message: "Invalid image file"}
)

// Uploader stores an image and returns its public secure URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, folder string) (string, error)
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(ctx context.Context, r io.Reader, folder string) (string, error)

func (f UploaderFunc) Upload(ctx context.Context, r io.Reader, folder string) (string, error) {
	return f(ctx, r, folder)
}

// File is an uploaded binary as received from the client.
type File struct {
	Name string
	Data []byte
}

// Disabled rejects every upload. Used when no media host is configured so
// URL-only payloads keep working.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader, string) (string, error) {
	return "", fmt.Errorf("%w: media host not configured", ErrUpload)
}

// Resolve applies the image policy: an uploaded file wins and is replaced by
// the media host URL; otherwise the supplied URL is returned trimmed. An empty
// result means no image was supplied.
func Resolve(ctx context.Context, up Uploader, file *File, url, folder string) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return strings.TrimSpace(url), nil
	}
	prepared, err := Prepare(file)
	if err != nil {
		return "", err
	}
	secureURL, err := up.Upload(ctx, bytes.NewReader(prepared), folder)
	if err != nil {
		if errors.Is(err, ErrUpload) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return secureURL, nil
}
