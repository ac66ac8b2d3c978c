package layout

import (
	"strings"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/errors"
)

// Orientation is the user's paper orientation policy.
type Orientation string

const (
	// Auto keeps the nominal paper and lets the planner rotate it when that
	// fits more photos.
	Auto Orientation = "auto"
	// Portrait forces the paper height to be at least its width.
	Portrait Orientation = "portrait"
	// Landscape forces the paper width to be at least its height.
	Landscape Orientation = "landscape"
)

// Orientations lists the accepted policies in display order.
var Orientations = []Orientation{Auto, Portrait, Landscape}

// ParseOrientation parses a policy name case-insensitively.
// The empty string means [Auto].
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return Auto, nil
	case Auto, Portrait, Landscape:
		return o, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidOrientation,
			"invalid orientation %q (want auto, portrait or landscape)", s)
	}
}

// String implements fmt.Stringer.
func (o Orientation) String() string {
	if o == "" {
		return string(Auto)
	}
	return string(o)
}

// Set implements pflag.Value so an Orientation can be bound to a flag.
func (o *Orientation) Set(s string) error {
	v, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Type implements pflag.Value.
func (o *Orientation) Type() string { return "orientation" }

// Apply returns paper oriented according to the policy.
func (o Orientation) Apply(paper catalog.Dimension) catalog.Dimension {
	switch o {
	case Portrait:
		if paper.Width > paper.Height {
			return paper.Swap()
		}
	case Landscape:
		if paper.Width < paper.Height {
			return paper.Swap()
		}
	}
	return paper
}
