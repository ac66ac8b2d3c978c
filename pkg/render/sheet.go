package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/layout"
)

// Sheet is a finished print sheet. It is never modified after it is
// returned; accessors hand out copies.
type Sheet struct {
	Seq        uint64
	Plan       layout.Plan
	Background color.Color
	Scale      float64

	img *image.RGBA
	png []byte
}

// NewSheet encodes img and wraps it as a Sheet.
func NewSheet(img *image.RGBA, plan layout.Plan, bg color.Color, scale float64) (*Sheet, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return &Sheet{Plan: plan, Background: bg, Scale: scale, img: img, png: data}, nil
}

// SheetFromPNG rebuilds a Sheet from previously encoded bytes.
func SheetFromPNG(data []byte, plan layout.Plan, bg color.Color, scale float64) (*Sheet, error) {
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode cached sheet")
	}
	rgba, ok := decoded.(*image.RGBA)
	if !ok {
		b := decoded.Bounds()
		rgba = image.NewRGBA(b)
		draw.Draw(rgba, b, decoded, b.Min, draw.Src)
	}
	return &Sheet{Plan: plan, Background: bg, Scale: scale, img: rgba, png: bytes.Clone(data)}, nil
}

// PNG returns a copy of the encoded sheet.
func (s *Sheet) PNG() []byte { return bytes.Clone(s.png) }

// Size returns the encoded size in bytes.
func (s *Sheet) Size() int { return len(s.png) }

// Image returns a copy of the raster.
func (s *Sheet) Image() *image.RGBA {
	out := &image.RGBA{
		Pix:    bytes.Clone(s.img.Pix),
		Stride: s.img.Stride,
		Rect:   s.img.Rect,
	}
	return out
}

// Bounds returns the raster bounds.
func (s *Sheet) Bounds() image.Rectangle { return s.img.Rect }

// EncodePNG encodes img with best-speed compression.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
