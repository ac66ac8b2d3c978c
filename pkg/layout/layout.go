package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/idphoto/pkg/catalog"
)

// Print constants.
const (
	DPI       = 300  // print resolution in pixels per inch
	CmPerInch = 2.54 // centimetres per inch
	Gap       = 5    // pixels between neighbouring tiles at DPI
	ScreenDPI = 96   // CSS reference resolution
)

// CmToPixels converts a length in centimetres to whole print pixels,
// rounding down. Non-finite input yields 0.
func CmToPixels(cm float64) int {
	px := math.Floor(cm * DPI / CmPerInch)
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0
	}
	return int(px)
}

// GapCentimeters returns [Gap] expressed in centimetres.
func GapCentimeters() float64 {
	return Gap / float64(DPI) * CmPerInch
}

// Plan is the result of packing one photo size onto one paper size.
// All lengths are print pixels at [DPI].
type Plan struct {
	Rows        int  `json:"rows"`
	Cols        int  `json:"cols"`
	IsRotated   bool `json:"is_rotated"`
	TotalPhotos int  `json:"total_photos"`

	MarginX float64 `json:"margin_x"`
	MarginY float64 `json:"margin_y"`

	ContainerWidth  int `json:"container_width"`
	ContainerHeight int `json:"container_height"`
	TargetWidth     int `json:"target_width"`
	TargetHeight    int `json:"target_height"`

	Orientation Orientation `json:"orientation"`
}

// Tile is the position of one photo copy on the sheet.
type Tile struct {
	Col int     `json:"col"`
	Row int     `json:"row"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   int     `json:"w"`
	H   int     `json:"h"`
}

// Compute packs photo onto paper under the given orientation policy.
func Compute(photo, paper catalog.Dimension, policy Orientation) Plan {
	if policy == "" {
		policy = Auto
	}
	paper = policy.Apply(paper)

	tw, th := CmToPixels(photo.Width), CmToPixels(photo.Height)
	cw, ch := CmToPixels(paper.Width), CmToPixels(paper.Height)

	cols, rows := fit(cw, tw), fit(ch, th)
	rotated := false

	if policy == Auto {
		rcols, rrows := fit(ch, tw), fit(cw, th)
		if rcols*rrows > cols*rows {
			cols, rows = rcols, rrows
			cw, ch = ch, cw
			rotated = true
		}
	}

	p := Plan{
		Rows:            rows,
		Cols:            cols,
		IsRotated:       rotated,
		TotalPhotos:     rows * cols,
		ContainerWidth:  cw,
		ContainerHeight: ch,
		TargetWidth:     tw,
		TargetHeight:    th,
		Orientation:     policy,
	}
	if p.TotalPhotos == 0 {
		p.MarginX = float64(cw) / 2
		p.MarginY = float64(ch) / 2
		return p
	}
	p.MarginX = float64(cw-cols*(tw+Gap)+Gap) / 2
	p.MarginY = float64(ch-rows*(th+Gap)+Gap) / 2
	return p
}

// fit returns how many tiles of the given size, each followed by Gap, fit
// into container.
func fit(container, tile int) int {
	if container <= 0 || tile <= 0 {
		return 0
	}
	return container / (tile + Gap)
}

// Empty reports whether no tile fits.
func (p Plan) Empty() bool { return p.TotalPhotos == 0 }

// GridWidth returns the width covered by the tiles and the gaps between them.
func (p Plan) GridWidth() int {
	if p.Cols == 0 {
		return 0
	}
	return p.Cols*(p.TargetWidth+Gap) - Gap
}

// GridHeight returns the height covered by the tiles and the gaps between them.
func (p Plan) GridHeight() int {
	if p.Rows == 0 {
		return 0
	}
	return p.Rows*(p.TargetHeight+Gap) - Gap
}

// Tiles returns every tile position, column by column.
func (p Plan) Tiles() []Tile {
	if p.Empty() {
		return nil
	}
	tiles := make([]Tile, 0, p.TotalPhotos)
	for i := 0; i < p.Cols; i++ {
		for j := 0; j < p.Rows; j++ {
			tiles = append(tiles, Tile{
				Col: i,
				Row: j,
				X:   p.MarginX + float64(i*(p.TargetWidth+Gap)),
				Y:   p.MarginY + float64(j*(p.TargetHeight+Gap)),
				W:   p.TargetWidth,
				H:   p.TargetHeight,
			})
		}
	}
	return tiles
}

// Summary returns a one-line description such as
// "4 rows × 4 cols, 16 photos (rotated)".
func (p Plan) Summary() string {
	s := fmt.Sprintf("%d rows × %d cols, %d photos", p.Rows, p.Cols, p.TotalPhotos)
	if p.IsRotated {
		s += " (rotated)"
	}
	return s
}
