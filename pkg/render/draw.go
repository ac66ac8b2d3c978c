package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/layout"
)

// PrintScale maps reference units onto the print surface.
const PrintScale = float64(layout.DPI) / float64(layout.ScreenDPI)

// BorderWidth is the cut border stroke width in reference units.
const BorderWidth = 0.5

var (
	// ErrNoImage is returned when there is no photo to draw.
	ErrNoImage = errors.New(errors.ErrCodeResourceUnavailable, "no photo to render")

	// ErrNoSurface is returned when the plan's container has no area.
	ErrNoSurface = errors.New(errors.ErrCodeResourceUnavailable, "sheet has no drawable area")
)

// Option configures a drawing pass.
type Option func(*drawConfig)

type drawConfig struct {
	scale   float64
	cropper Cropper
	filter  imaging.ResampleFilter
	border  color.Color
}

// WithScale sets the factor from reference units to surface pixels.
func WithScale(s float64) Option { return func(c *drawConfig) { c.scale = s } }

// WithCrop selects the crop mode.
func WithCrop(m CropMode) Option { return func(c *drawConfig) { c.cropper = cropperFor(m) } }

// WithCropper installs a custom Cropper.
func WithCropper(cr Cropper) Option { return func(c *drawConfig) { c.cropper = cr } }

// WithFilter sets the resampling filter used to fit the crop into a tile.
func WithFilter(f imaging.ResampleFilter) Option { return func(c *drawConfig) { c.filter = f } }

// WithBorderColor overrides the cut border colour. A nil colour disables the border.
func WithBorderColor(col color.Color) Option { return func(c *drawConfig) { c.border = col } }

func newDrawConfig(opts []Option) drawConfig {
	c := drawConfig{
		scale:   PrintScale,
		cropper: CenterCropper{},
		filter:  imaging.Lanczos,
		border:  BorderColor,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.scale <= 0 || math.IsNaN(c.scale) || math.IsInf(c.scale, 0) {
		c.scale = PrintScale
	}
	if c.cropper == nil {
		c.cropper = CenterCropper{}
	}
	return c
}

// SurfaceSize returns the pixel size of the surface Draw allocates for plan.
func SurfaceSize(plan layout.Plan, scale float64) (w, h int) {
	return int(float64(plan.ContainerWidth) * scale), int(float64(plan.ContainerHeight) * scale)
}

// Draw composites src onto a fresh surface according to plan.
//
// The surface is filled with bg first, so an empty plan yields a
// background-only sheet. Draw returns [ErrNoImage] for a nil source and
// [ErrNoSurface] when the container has no area.
func Draw(src image.Image, plan layout.Plan, bg color.Color, opts ...Option) (*image.RGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrNoImage
	}
	cfg := newDrawConfig(opts)

	w, h := SurfaceSize(plan, cfg.scale)
	if w <= 0 || h <= 0 {
		return nil, ErrNoSurface
	}
	if bg == nil {
		bg = color.White
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()

	tw, th := plan.TargetWidth, plan.TargetHeight
	if plan.Empty() || tw <= 0 || th <= 0 {
		return surface(dc), nil
	}

	rect, err := cfg.cropper.Crop(src, tw, th)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "crop photo")
	}
	if rect.Empty() {
		rect = src.Bounds()
	}

	// Every tile is identical, so the crop is resampled once at device size.
	dw := max(1, int(math.Round(float64(tw)*cfg.scale)))
	dh := max(1, int(math.Round(float64(th)*cfg.scale)))
	tile := imaging.Resize(imaging.Crop(src, rect), dw, dh, cfg.filter)

	tiles := plan.Tiles()
	for _, t := range tiles {
		x := int(math.Round(t.X * cfg.scale))
		y := int(math.Round(t.Y * cfg.scale))
		dc.DrawImage(tile, x, y)
	}

	if cfg.border != nil {
		dc.Push()
		dc.Scale(cfg.scale, cfg.scale)
		dc.SetColor(cfg.border)
		// gg strokes in device pixels regardless of the current transform.
		dc.SetLineWidth(BorderWidth * cfg.scale)
		for _, t := range tiles {
			dc.DrawRectangle(t.X, t.Y, float64(t.W), float64(t.H))
			dc.Stroke()
		}
		dc.Pop()
	}

	return surface(dc), nil
}

func surface(dc *gg.Context) *image.RGBA {
	return dc.Image().(*image.RGBA)
}
