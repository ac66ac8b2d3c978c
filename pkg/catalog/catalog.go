package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Dimension is a physical size in centimetres.
type Dimension struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Valid reports whether both sides are strictly positive.
func (d Dimension) Valid() bool { return d.Width > 0 && d.Height > 0 }

// Swap returns the dimension rotated by 90 degrees.
func (d Dimension) Swap() Dimension { return Dimension{Width: d.Height, Height: d.Width} }

// IsPortrait reports whether the height is at least the width.
func (d Dimension) IsPortrait() bool { return d.Height >= d.Width }

// IsLandscape reports whether the width is at least the height.
func (d Dimension) IsLandscape() bool { return d.Width >= d.Height }

// String formats the dimension as "WxH cm".
func (d Dimension) String() string { return fmt.Sprintf("%gx%g cm", d.Width, d.Height) }

// Spec is a named catalog entry. Photo and paper specs share the shape.
type Spec struct {
	ID    string    `json:"id" yaml:"id" toml:"id"`
	Size  Dimension `json:"size" yaml:"size" toml:"size"`
	Label string    `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// DisplayName returns the first whitespace-delimited token of the label,
// or the id when no label is set. Exported file names are built from it.
func (s Spec) DisplayName() string {
	if f := strings.Fields(s.Label); len(f) > 0 {
		return f[0]
	}
	return s.ID
}

// PhotoSpec is an ID-photo size.
type PhotoSpec = Spec

// PaperSpec is a printable paper size.
type PaperSpec = Spec

// Default identifiers used when a lookup misses.
const (
	DefaultPhotoID = "1inch"
	DefaultPaperID = "6inch"
)

// Catalog is an immutable pair of photo and paper tables.
type Catalog struct {
	photos       []PhotoSpec
	papers       []PaperSpec
	photoIndex   map[string]int
	paperIndex   map[string]int
	defaultPhoto int
	defaultPaper int
}

// New builds a catalog from the given tables. The tables are copied.
// The default entries are DefaultPhotoID/DefaultPaperID when present,
// otherwise the first entry of each table.
func New(photos []PhotoSpec, papers []PaperSpec) *Catalog {
	c := &Catalog{
		photos: slices.Clone(photos),
		papers: slices.Clone(papers),
	}
	c.photoIndex = index(c.photos)
	c.paperIndex = index(c.papers)
	c.defaultPhoto = c.photoIndex[DefaultPhotoID]
	c.defaultPaper = c.paperIndex[DefaultPaperID]
	return c
}

func index(specs []Spec) map[string]int {
	m := make(map[string]int, len(specs))
	for i, s := range specs {
		if _, dup := m[s.ID]; !dup {
			m[s.ID] = i
		}
	}
	return m
}

var builtin = sync.OnceValue(func() *Catalog {
	return New(builtinPhotos, builtinPapers)
})

// Builtin returns the process-wide builtin catalog.
func Builtin() *Catalog { return builtin() }

// Photos returns a copy of the photo table in catalog order.
func (c *Catalog) Photos() []PhotoSpec { return slices.Clone(c.photos) }

// Papers returns a copy of the paper table in catalog order.
func (c *Catalog) Papers() []PaperSpec { return slices.Clone(c.papers) }

// LookupPhoto returns the photo spec with the given id and whether it exists.
// On a miss the default photo spec is returned.
func (c *Catalog) LookupPhoto(id string) (PhotoSpec, bool) {
	return lookup(c.photos, c.photoIndex, c.defaultPhoto, id)
}

// LookupPaper returns the paper spec with the given id and whether it exists.
// On a miss the default paper spec is returned.
func (c *Catalog) LookupPaper(id string) (PaperSpec, bool) {
	return lookup(c.papers, c.paperIndex, c.defaultPaper, id)
}

// Photo returns the photo spec with the given id, falling back to the default.
func (c *Catalog) Photo(id string) PhotoSpec {
	s, _ := c.LookupPhoto(id)
	return s
}

// Paper returns the paper spec with the given id, falling back to the default.
func (c *Catalog) Paper(id string) PaperSpec {
	s, _ := c.LookupPaper(id)
	return s
}

func lookup(specs []Spec, idx map[string]int, def int, id string) (Spec, bool) {
	if i, ok := idx[id]; ok {
		return specs[i], true
	}
	if len(specs) == 0 {
		return Spec{}, false
	}
	return specs[def], false
}

// Merge returns a new catalog with extra photo and paper specs overlaid on c.
// An extra spec with an existing id replaces it in place; new ids are appended.
func (c *Catalog) Merge(photos []PhotoSpec, papers []PaperSpec) *Catalog {
	return New(overlay(c.photos, photos), overlay(c.papers, papers))
}

func overlay(base, extra []Spec) []Spec {
	out := slices.Clone(base)
	idx := index(out)
	for _, s := range extra {
		if i, ok := idx[s.ID]; ok {
			out[i] = s
			continue
		}
		idx[s.ID] = len(out)
		out = append(out, s)
	}
	return out
}
