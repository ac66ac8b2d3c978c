package render

import (
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/matzehuels/idphoto/pkg/errors"
)

// CropMode selects how the source region for a tile is chosen.
type CropMode string

const (
	// CropCenter takes the largest centred region with the tile's aspect ratio.
	CropCenter CropMode = "center"
	// CropSmart lets a content-aware analyzer pick the region.
	CropSmart CropMode = "smart"
)

// ParseCropMode parses a crop mode name. The empty string means [CropCenter].
func ParseCropMode(s string) (CropMode, error) {
	switch m := CropMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return CropCenter, nil
	case CropCenter, CropSmart:
		return m, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidCrop, "invalid crop mode %q (want center or smart)", s)
	}
}

// CropRect returns the centred source region, relative to the image origin,
// that has the same aspect ratio as a tw×th tile.
//
// With r1 = srcW/tw and r2 = srcH/th, a source that is relatively wider than
// the tile keeps its full height and loses equal strips left and right;
// otherwise it keeps its full width and loses strips top and bottom.
// The photo is never letterboxed.
func CropRect(srcW, srcH, tw, th int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || tw <= 0 || th <= 0 {
		return image.Rectangle{}
	}
	r1 := float64(srcW) / float64(tw)
	r2 := float64(srcH) / float64(th)

	var cutX, cutY, cutW, cutH float64
	if r1 > r2 {
		cutW = float64(tw) * r2
		cutH = float64(srcH)
		cutX = (float64(srcW) - cutW) / 2
	} else {
		cutH = float64(th) * r1
		cutW = float64(srcW)
		cutY = (float64(srcH) - cutH) / 2
	}

	x0, y0 := int(math.Round(cutX)), int(math.Round(cutY))
	w := max(1, min(srcW-x0, int(math.Round(cutW))))
	h := max(1, min(srcH-y0, int(math.Round(cutH))))
	return image.Rect(x0, y0, x0+w, y0+h)
}

// Cropper chooses the source region for a tile of the given size.
// The returned rectangle is in the image's own coordinate space.
type Cropper interface {
	Crop(img image.Image, tw, th int) (image.Rectangle, error)
}

// CenterCropper implements [CropCenter].
type CenterCropper struct{}

// Crop implements Cropper.
func (CenterCropper) Crop(img image.Image, tw, th int) (image.Rectangle, error) {
	b := img.Bounds()
	return CropRect(b.Dx(), b.Dy(), tw, th).Add(b.Min), nil
}

// SmartCropper implements [CropSmart] on top of muesli/smartcrop.
type SmartCropper struct {
	Filter imaging.ResampleFilter
}

// Crop implements Cropper. It falls back to the centred region if the
// analyzer fails.
func (s SmartCropper) Crop(img image.Image, tw, th int) (image.Rectangle, error) {
	filter := s.Filter
	if filter.Kernel == nil {
		filter = imaging.Linear
	}
	analyzer := smartcrop.NewAnalyzer(resizer{filter: filter})
	rect, err := analyzer.FindBestCrop(img, tw, th)
	if err != nil || rect.Empty() {
		return CenterCropper{}.Crop(img, tw, th)
	}
	return rect.Intersect(img.Bounds()), nil
}

// resizer adapts imaging to the smartcrop.Resizer interface.
type resizer struct {
	filter imaging.ResampleFilter
}

func (r resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.filter)
}

// cropperFor returns the Cropper for a mode.
func cropperFor(mode CropMode) Cropper {
	if mode == CropSmart {
		return SmartCropper{}
	}
	return CenterCropper{}
}
