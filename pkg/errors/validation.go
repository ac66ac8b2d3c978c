package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// maxIDLength bounds catalog identifiers loaded from user files.
const maxIDLength = 64

// ValidateSpecID validates a catalog identifier (e.g. "1inch", "a4").
// Identifiers end up in exported file names, so the rules are conservative:
//   - No empty ids
//   - No whitespace or control characters
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
func ValidateSpecID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCatalog, "spec id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidCatalog, "spec id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidCatalog, "spec id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return New(ErrCodeInvalidCatalog, "spec id %q contains path characters", id)
	}

	return nil
}

// ValidateDimension checks that a physical size in centimetres is usable.
// NaN, infinities and non-positive values are rejected.
func ValidateDimension(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "dimension must be a finite number")
		}
		if v <= 0 {
			return New(ErrCodeInvalidInput, "dimension must be positive (got %gx%g cm)", width, height)
		}
	}
	return nil
}

// ValidateScale checks a print scale factor.
// The upper bound keeps a single sheet from allocating gigabytes.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return New(ErrCodeInvalidScale, "scale must be a positive number (got %g)", scale)
	}
	if scale > 8 {
		return New(ErrCodeInvalidScale, "scale too large (max 8, got %g)", scale)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name an existing directory-like target ("." or ending in a separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) || filepath.Base(path) == "." {
		return New(ErrCodeInvalidPath, "path %q names a directory, not a file", path)
	}

	return nil
}
