// Package avatar stores profile pictures uploaded at registration.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxSize is the largest accepted avatar in bytes.
const MaxSize = 5 << 20

var (
	ErrAvatarsDisabled   = errors.New("avatar uploads are disabled")
	ErrUnsupportedAvatar = errors.New("avatar must be an image")
	ErrAvatarTooLarge    = errors.New("avatar exceeds 5 MiB")
)

// Store persists an avatar image and returns its public URL. Delete takes
// a URL previously returned by Upload.
type Store interface {
	Upload(ctx context.Context, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, url string) error
}

// Disabled rejects every upload. Used when no bucket is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, io.Reader, int64) (string, error) {
	return "", ErrAvatarsDisabled
}

func (Disabled) Delete(context.Context, string) error { return nil }

// readImage buffers at most MaxSize bytes and checks that both the declared
// and the sniffed content type are images. It returns the sniffed type.
func readImage(contentType string, body io.Reader, size int64) ([]byte, string, error) {
	if size > MaxSize {
		return nil, "", ErrAvatarTooLarge
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, "", ErrUnsupportedAvatar
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read avatar: %w", err)
	}
	if len(data) > MaxSize {
		return nil, "", ErrAvatarTooLarge
	}
	if len(data) == 0 {
		return nil, "", ErrUnsupportedAvatar
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return nil, "", ErrUnsupportedAvatar
	}
	return data, sniffed, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ""
	}
}
