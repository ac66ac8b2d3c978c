package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/idphoto/pkg/cache"
	"github.com/matzehuels/idphoto/pkg/errors"
)

// Source yields the photo to render.
type Source interface {
	Decode(ctx context.Context) (image.Image, error)
}

// Keyed is implemented by sources with a stable content identity.
// Only keyed sources can be served from a sheet cache.
type Keyed interface {
	Key() string
}

// FileSource reads a photo from disk and applies its EXIF orientation.
type FileSource struct {
	Path string
}

// Decode implements Source.
func (s FileSource) Decode(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Open(s.Path, imaging.AutoOrientation(true))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "photo %s", s.Path)
		}
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", s.Path)
	}
	return img, nil
}

// Key implements Keyed. It changes whenever the file is rewritten.
func (s FileSource) Key() string {
	fi, err := os.Stat(s.Path)
	if err != nil {
		return ""
	}
	return cache.Hash([]byte(fmt.Sprintf("file:%s:%d:%d", s.Path, fi.Size(), fi.ModTime().UnixNano())))
}

func (s FileSource) String() string { return s.Path }

// BytesSource decodes an in-memory upload.
type BytesSource struct {
	Name string
	Data []byte
}

// Decode implements Source.
func (s BytesSource) Decode(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.Data) == 0 {
		return nil, ErrNoImage
	}
	img, err := imaging.Decode(bytes.NewReader(s.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", s.String())
	}
	return img, nil
}

// Key implements Keyed.
func (s BytesSource) Key() string {
	if len(s.Data) == 0 {
		return ""
	}
	return cache.Hash(s.Data)
}

func (s BytesSource) String() string {
	if s.Name == "" {
		return "upload"
	}
	return s.Name
}

// ImageSource wraps an already decoded image.
type ImageSource struct {
	Image image.Image
}

// Decode implements Source.
func (s ImageSource) Decode(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Image == nil {
		return nil, ErrNoImage
	}
	return s.Image, nil
}

// SourceKey returns src's cache key, or "" when it has none.
func SourceKey(src Source) string {
	if k, ok := src.(Keyed); ok {
		return k.Key()
	}
	return ""
}
