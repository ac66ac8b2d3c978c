// Package printing prepares rendered sheets for a printer.
//
// A [Page] describes the physical medium a sheet is printed on. [WritePage]
// produces a self-contained HTML document sized to that medium, suitable
// for a browser's print dialog, and [Spool] hands the sheet to the system
// print spooler directly.
package printing

import (
	"fmt"
	"math"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/layout"
)

// PxPerCm is the CSS reference density (96 px per inch) used for print
// pages. It is independent of the 300 DPI render density.
const PxPerCm = layout.ScreenDPI / layout.CmPerInch

// Page is the oriented print medium for one sheet.
type Page struct {
	Width     float64 `json:"width_cm"`
	Height    float64 `json:"height_cm"`
	Landscape bool    `json:"landscape"`
}

// PageFor orients paper to match the sheet rendered for plan.
//
// The nominal paper size is swapped when its orientation disagrees with the
// rendered container's, so the page and the sheet always share an aspect.
func PageFor(plan layout.Plan, paper catalog.Dimension) Page {
	w, h := paper.Width, paper.Height
	if (w > h) != (plan.ContainerWidth > plan.ContainerHeight) {
		w, h = h, w
	}
	return Page{Width: w, Height: h, Landscape: w > h}
}

// WidthPx returns the page width in CSS pixels.
func (p Page) WidthPx() float64 { return p.Width * PxPerCm }

// HeightPx returns the page height in CSS pixels.
func (p Page) HeightPx() float64 { return p.Height * PxPerCm }

// Orientation returns "landscape" or "portrait".
func (p Page) Orientation() string {
	if p.Landscape {
		return "landscape"
	}
	return "portrait"
}

// Media returns the CUPS custom media name for the page, e.g.
// "Custom.102x152mm". The short edge always comes first.
func (p Page) Media() string {
	short, long := math.Min(p.Width, p.Height), math.Max(p.Width, p.Height)
	return fmt.Sprintf("Custom.%dx%dmm", int(math.Round(short*10)), int(math.Round(long*10)))
}

func (p Page) String() string {
	return fmt.Sprintf("%gx%g cm %s", p.Width, p.Height, p.Orientation())
}
