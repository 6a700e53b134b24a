// Package images converts uploaded avatar files into the fixed
// representation the application stores: a 250x250 PNG.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// MaxAvatarBytes is the upload size ceiling for avatar images.
	MaxAvatarBytes = 1_000_000

	// AvatarSize is the edge length of the stored square avatar.
	AvatarSize = 250
)

// Common avatar processing errors
var (
	// ErrImageTooLarge indicates the upload exceeds MaxAvatarBytes.
	ErrImageTooLarge = fmt.Errorf("image exceeds the %d byte limit", MaxAvatarBytes)

	// ErrUnsupportedFormat indicates a filename without a jpg/jpeg/png extension.
	ErrUnsupportedFormat = errors.New("file must be an image (jpg, jpeg or png)")

	// ErrInvalidImage indicates the bytes could not be decoded as an image.
	ErrInvalidImage = errors.New("could not decode image data")
)

// allowedExtensions mirrors the upload filter of the HTTP surface: the
// original filename decides whether the bytes are even considered.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AllowedExtension reports whether the filename carries one of the accepted
// image extensions (case-insensitive).
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ProcessAvatar validates and converts an uploaded image into the stored
// avatar representation. The filename must carry an allowed extension and
// the data must fit under MaxAvatarBytes; the image is then resized to
// AvatarSize x AvatarSize and re-encoded as PNG regardless of input format.
func ProcessAvatar(filename string, data []byte) ([]byte, error) {
	if !AllowedExtension(filename) {
		return nil, ErrUnsupportedFormat
	}

	if len(data) > MaxAvatarBytes {
		return nil, ErrImageTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	resized := imaging.Resize(img, AvatarSize, AvatarSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode avatar as PNG: %w", err)
	}

	return buf.Bytes(), nil
}
