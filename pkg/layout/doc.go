// Package layout packs identical photo tiles onto a sheet of paper.
//
// # Overview
//
// Given a photo size and a paper size in centimetres, [Compute] converts both
// to print pixels at [DPI] and returns a [Plan]: how many rows and columns of
// tiles fit, whether the sheet had to be turned by 90 degrees to fit more of
// them, and the margins that centre the grid on the sheet.
//
// The package is pure. It performs no I/O, holds no state and [Compute] always
// returns the same plan for the same inputs.
//
// # Grid Maximisation
//
// Tiles are laid out in a regular grid with a fixed [Gap] of pixels between
// neighbours. Each tile reserves its trailing gap, so the number of tiles that
// fit along a side of length c is floor(c / (tile + Gap)).
//
// Under [Auto] the planner also tries the sheet turned by 90 degrees and keeps
// whichever arrangement fits strictly more photos:
//
//	p := layout.Compute(photo, paper, layout.Auto)
//	if p.IsRotated {
//	    // ContainerWidth and ContainerHeight are already swapped
//	}
//
// [Portrait] and [Landscape] force the sheet orientation first and disable
// the rotation search.
//
// # Degenerate Plans
//
// A photo larger than the paper is not an error. The plan simply has zero
// rows or columns, [Plan.Empty] reports true and both margins are half the
// container so that renderers can still fill the background.
package layout
