package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/idphoto/pkg/errors"
)

// Background presets offered to users. Names must not shadow CSS colour
// names.
var backgroundPresets = map[string]string{
	"white":      "#ffffff",
	"blue":       "#000078",
	"gray":       "#808080",
	"light-gray": "#f0f0f0",
	"light-blue": "#e6f7ff",
	"red":        "#ff0000",
}

// BackgroundPresets lists the preset names in display order.
var BackgroundPresets = []string{"white", "blue", "gray", "light-gray", "light-blue", "red"}

// DefaultBackground is used when no background is given.
const DefaultBackground = "white"

// BorderColor is the colour of the cut border around each tile.
var BorderColor = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

// ResolveColor maps a preset name to its hex value. Any other value,
// including the empty string, is returned unchanged.
func ResolveColor(name string) string {
	if hex, ok := backgroundPresets[strings.ToLower(name)]; ok {
		return hex
	}
	return name
}

// ParseColor resolves s and parses it as a literal colour:
//
//	#rgb, #rrggbb, #rrggbbaa
//	rgb(r, g, b), rgba(r, g, b, a)   channels 0-255, alpha 0-1
//	transparent
//	a CSS colour name such as "lightblue"
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(ResolveColor(strings.TrimSpace(s))))
	switch {
	case v == "":
		return nil, errors.New(errors.ErrCodeInvalidColor, "empty colour")
	case v == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(s, v)
	case strings.HasPrefix(v, "rgb"):
		return parseFunctional(s, v)
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidColor, "unknown colour %q", s)
}

func parseHex(s, v string) (color.Color, error) {
	alpha := uint8(0xff)
	switch len(v) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid colour %q", s)
		}
		alpha, v = uint8(a), v[:7]
	default:
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid colour %q (want #rgb, #rrggbb or #rrggbbaa)", s)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid colour %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// parseFunctional parses rgb(...) and rgba(...).
func parseFunctional(s, v string) (color.Color, error) {
	name, args, ok := strings.Cut(v, "(")
	if !ok || !strings.HasSuffix(args, ")") || (name != "rgb" && name != "rgba") {
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid colour %q", s)
	}
	parts := strings.Split(strings.TrimSuffix(args, ")"), ",")
	want := 3
	if name == "rgba" {
		want = 4
	}
	if len(parts) != want {
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid colour %q (%s takes %d values)", s, name, want)
	}

	var ch [3]uint8
	for i := range ch {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return nil, errors.New(errors.ErrCodeInvalidColor, "invalid colour %q (channels are 0-255)", s)
		}
		ch[i] = uint8(n)
	}
	alpha := uint8(0xff)
	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return nil, errors.New(errors.ErrCodeInvalidColor, "invalid colour %q (alpha is 0-1)", s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// ColorOrWhite is like ParseColor but degrades to white on invalid input.
func ColorOrWhite(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.White
	}
	return c
}
