// Package catalog holds the static tables of ID-photo and paper sizes.
//
// Both tables are read-only after construction. The builtin catalog is built
// once per process and shared; custom entries loaded from a YAML or TOML file
// are overlaid onto a copy with [Merge], never onto the shared table.
//
// # Lookups
//
// Lookups never fail. An unknown identifier silently resolves to the
// designated default entry ("1inch" for photos, "6inch" for paper):
//
//	c := catalog.Builtin()
//	photo := c.Photo("us_visa")   // 5.1 x 5.1 cm
//	paper := c.Paper("nope")      // falls back to 6inch
//
// Use [Catalog.LookupPhoto] and [Catalog.LookupPaper] when the caller needs to
// know whether the fallback kicked in (for example to log a warning).
//
// # Units
//
// All sizes are in centimetres. Conversion to pixels lives in the layout
// package.
package catalog
