// Package pipeline provides the plan → render pipeline behind every idphoto
// command.
//
// The CLI, the watch loop and any embedding program go through a [Runner] so
// that catalog lookups, option defaults, caching and logging behave the same
// everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(catalog.Builtin(), cache.NewMemoryCache(0), nil, logger)
//	opts := pipeline.Options{Photo: "1inch", Paper: "6inch", Background: "blue"}
//	result, err := runner.Execute(ctx, render.FileSource{Path: "me.jpg"}, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
//
// Plan without rendering:
//
//	sel, plan, err := runner.Plan(ctx, opts)
//
// Render one photo onto several papers concurrently:
//
//	results, err := runner.ExecuteAll(ctx, src, opts, []string{"6inch", "a4"})
package pipeline

import (
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/idphoto/pkg/cache"
	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/layout"
	"github.com/matzehuels/idphoto/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultPhoto is the photo spec used when none is given.
	DefaultPhoto = catalog.DefaultPhotoID

	// DefaultPaper is the paper spec used when none is given.
	DefaultPaper = catalog.DefaultPaperID

	// DefaultOrientation lets the planner rotate the sheet when that fits more.
	DefaultOrientation = string(layout.Auto)

	// DefaultBackground is the sheet background.
	DefaultBackground = render.DefaultBackground

	// DefaultScale renders at print resolution.
	DefaultScale = render.PrintScale

	// DefaultCrop is the crop mode.
	DefaultCrop = string(render.CropCenter)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization so that plans can be reproduced.
type Options struct {
	Photo       string  `json:"photo,omitempty"`
	Paper       string  `json:"paper,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Background  string  `json:"background,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Crop        string  `json:"crop,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"` // bypass the sheet cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	JobID  string      `json:"-"`

	orientation layout.Orientation
	crop        render.CropMode
	background  color.Color

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Selection is the pair of catalog entries a run resolved to.
type Selection struct {
	Photo      catalog.PhotoSpec
	Paper      catalog.PaperSpec
	PhotoFound bool // false when Photo is the fallback default
	PaperFound bool // false when Paper is the fallback default
}

// Result contains the outputs of a pipeline run.
type Result struct {
	JobID     string
	Selection Selection
	Plan      layout.Plan

	// Sheet is the rendered sheet; PNG is its encoding.
	Sheet *render.Sheet
	PNG   []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the sheet came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tiles      int
	Width      int
	Height     int
	Bytes      int
	PlanTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	SheetHit bool
	Keyed    bool // false when the source has no content key and can not be cached
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateOrientation checks an orientation policy name.
func ValidateOrientation(s string) error {
	_, err := layout.ParseOrientation(s)
	return err
}

// ValidateBackground checks a background preset, hex colour or colour name.
func ValidateBackground(s string) error {
	_, err := render.ParseColor(s)
	return err
}

// ValidateCrop checks a crop mode name.
func ValidateCrop(s string) error {
	_, err := render.ParseCropMode(s)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.Photo == "" {
		o.Photo = DefaultPhoto
	}
	if o.Paper == "" {
		o.Paper = DefaultPaper
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Crop == "" {
		o.Crop = DefaultCrop
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	orientation, err := layout.ParseOrientation(o.Orientation)
	if err != nil {
		return err
	}
	bg, err := render.ParseColor(o.Background)
	if err != nil {
		return err
	}
	crop, err := render.ParseCropMode(o.Crop)
	if err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}

	o.orientation, o.background, o.crop = orientation, bg, crop
	o.validated = true
	return nil
}

// OrientationPolicy returns the parsed orientation. Valid after validation.
func (o *Options) OrientationPolicy() layout.Orientation { return o.orientation }

// BackgroundColor returns the parsed background. Valid after validation.
func (o *Options) BackgroundColor() color.Color { return o.background }

// CropMode returns the parsed crop mode. Valid after validation.
func (o *Options) CropMode() render.CropMode { return o.crop }

// SheetKeyOpts returns cache key options for the resolved selection.
func (o *Options) SheetKeyOpts(sel Selection) cache.SheetKeyOpts {
	return cache.SheetKeyOpts{
		Photo:       sel.Photo.ID + "@" + sel.Photo.Size.String(),
		Paper:       sel.Paper.ID + "@" + sel.Paper.Size.String(),
		Orientation: string(o.orientation),
		Background:  render.ResolveColor(o.Background),
		Scale:       o.Scale,
		Crop:        string(o.crop),
	}
}

// RenderOptions returns the drawing options for this run.
func (o *Options) RenderOptions() []render.Option {
	return []render.Option{render.WithScale(o.Scale), render.WithCrop(o.crop)}
}
