package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/layout"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0x78, A: 0xff}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func sameRGBA(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// smallPlan packs 0.5 cm tiles onto a 2 cm sheet: 3x3 tiles of 59 px with
// 24.5 px margins.
func smallPlan() layout.Plan {
	return layout.Compute(
		catalog.Dimension{Width: 0.5, Height: 0.5},
		catalog.Dimension{Width: 2, Height: 2},
		layout.Auto,
	)
}

func TestCropRect(t *testing.T) {
	tests := []struct {
		name           string
		srcW, srcH     int
		tw, th         int
		want           image.Rectangle
	}{
		{"wide source trims sides", 600, 400, 295, 413, image.Rect(157, 0, 443, 400)},
		{"tall source trims top and bottom", 300, 1000, 300, 400, image.Rect(0, 300, 300, 700)},
		{"same aspect keeps everything", 590, 826, 295, 413, image.Rect(0, 0, 590, 826)},
		{"zero source", 0, 100, 10, 10, image.Rectangle{}},
		{"zero tile", 100, 100, 0, 10, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CropRect(tt.srcW, tt.srcH, tt.tw, tt.th); got != tt.want {
				t.Errorf("CropRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropRectPreservesAspect(t *testing.T) {
	sources := [][2]int{{4000, 3000}, {3000, 4000}, {1080, 1920}, {512, 512}, {7, 1000}}
	tiles := [][2]int{{295, 413}, {602, 602}, {708, 472}}
	for _, s := range sources {
		for _, tile := range tiles {
			r := CropRect(s[0], s[1], tile[0], tile[1])
			if !r.In(image.Rect(0, 0, s[0], s[1])) {
				t.Errorf("crop %v outside %dx%d", r, s[0], s[1])
			}
			if r.Dx() != s[0] && r.Dy() != s[1] {
				t.Errorf("crop %v of %dx%d keeps neither full width nor full height", r, s[0], s[1])
			}
			want := float64(tile[0]) / float64(tile[1])
			got := float64(r.Dx()) / float64(r.Dy())
			// One pixel of rounding on the short side.
			tol := want/float64(min(r.Dx(), r.Dy())) + 1e-9
			if math.Abs(got-want) > max(tol, 0.02) {
				t.Errorf("crop %v of %dx%d aspect %.4f, want %.4f", r, s[0], s[1], got, want)
			}
		}
	}
}

func TestCenterCropperOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(100, 50, 700, 450))
	r, err := CenterCropper{}.Crop(img, 295, 413)
	if err != nil {
		t.Fatal(err)
	}
	if want := image.Rect(257, 50, 543, 450); r != want {
		t.Errorf("Crop() = %v, want %v", r, want)
	}
}

func TestSmartCropper(t *testing.T) {
	img := solid(400, 200, red)
	r, err := SmartCropper{}.Crop(img, 59, 59)
	if err != nil {
		t.Fatalf("Crop() error = %v", err)
	}
	if r.Empty() || !r.In(img.Bounds()) {
		t.Errorf("Crop() = %v, want non-empty rect inside %v", r, img.Bounds())
	}
	if ratio := float64(r.Dx()) / float64(r.Dy()); math.Abs(ratio-1) > 0.05 {
		t.Errorf("smart crop aspect = %.3f, want ~1", ratio)
	}
}

func TestParseCropMode(t *testing.T) {
	tests := []struct {
		in      string
		want    CropMode
		wantErr bool
	}{
		{"", CropCenter, false},
		{"center", CropCenter, false},
		{"SMART", CropSmart, false},
		{"face", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCropMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseCropMode(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidCrop) {
			t.Errorf("ParseCropMode(%q) code = %s", tt.in, errors.GetCode(err))
		}
	}
}

func TestColors(t *testing.T) {
	resolve := []struct{ in, want string }{
		{"white", "#ffffff"},
		{"blue", "#000078"},
		{"gray", "#808080"},
		{"#123456", "#123456"},
		{"Light-Blue", "#e6f7ff"},
		{"red", "#ff0000"},
		{"rebeccapurple", "rebeccapurple"},
		{"", ""},
	}
	for _, tt := range resolve {
		if got := ResolveColor(tt.in); got != tt.want {
			t.Errorf("ResolveColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	parse := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"blue", blue, false},
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#f00", red, false},
		{"#FF0000", red, false},
		{"lightblue", color.RGBA{0xad, 0xd8, 0xe6, 0xff}, false},
		{"light-gray", color.RGBA{0xf0, 0xf0, 0xf0, 0xff}, false},
		{"#ff000080", color.NRGBA{R: 0xff, A: 0x80}, false},
		{"rgb(1, 2, 3)", color.RGBA{1, 2, 3, 0xff}, false},
		{"RGBA(255,0,0,0.5)", color.NRGBA{R: 0xff, A: 0x80}, false},
		{"transparent", color.Transparent, false},
		{"darkseagreen", colornames.Darkseagreen, false},
		{"#12345", nil, true},
		{"#ff0000zz", nil, true},
		{"rgb(1,2)", nil, true},
		{"rgb(1,2,256)", nil, true},
		{"rgba(1,2,3,1.5)", nil, true},
		{"rgb(1,2,3", nil, true},
		{"rgbx(1,2,3)", nil, true},
		{"#zzzzzz", nil, true},
		{"not-a-colour", nil, true},
		{"", nil, true},
	}
	for _, tt := range parse {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidColor) {
				t.Errorf("ParseColor(%q) code = %s", tt.in, errors.GetCode(err))
			}
			continue
		}
		if !sameRGBA(got, tt.want) {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if !sameRGBA(ColorOrWhite("nope"), color.White) {
		t.Error("ColorOrWhite should degrade to white")
	}
}

func TestDrawErrors(t *testing.T) {
	plan := smallPlan()
	if _, err := Draw(nil, plan, blue); err != ErrNoImage {
		t.Errorf("Draw(nil) error = %v, want ErrNoImage", err)
	}
	if _, err := Draw(solid(10, 10, red), layout.Plan{}, blue); err != ErrNoSurface {
		t.Errorf("Draw(zero plan) error = %v, want ErrNoSurface", err)
	}
}

func TestDrawBackgroundOnly(t *testing.T) {
	plan := layout.Compute(catalog.Dimension{Width: 10, Height: 10}, catalog.Dimension{Width: 5, Height: 5}, layout.Auto)
	img, err := Draw(solid(20, 20, red), plan, blue, WithScale(0.1))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 59, 59) {
		t.Fatalf("bounds = %v, want 59x59", got)
	}
	for y := 0; y < 59; y++ {
		for x := 0; x < 59; x++ {
			if !sameRGBA(img.At(x, y), blue) {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, img.At(x, y))
			}
		}
	}
}

func TestDrawTiles(t *testing.T) {
	plan := smallPlan()
	if plan.TotalPhotos != 9 || plan.MarginX != 24.5 {
		t.Fatalf("unexpected plan %+v", plan)
	}

	img, err := Draw(solid(300, 200, red), plan, blue, WithScale(1))
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 236, 236) {
		t.Fatalf("bounds = %v, want 236x236", got)
	}

	for _, tile := range plan.Tiles() {
		cx := int(tile.X) + tile.W/2
		cy := int(tile.Y) + tile.H/2
		if !sameRGBA(img.At(cx, cy), red) {
			t.Errorf("tile (%d,%d) centre = %v, want photo", tile.Col, tile.Row, img.At(cx, cy))
		}
	}

	// Corners and the gap between the first two columns stay background.
	for _, p := range []image.Point{{0, 0}, {235, 235}, {86, 54}, {54, 86}} {
		if !sameRGBA(img.At(p.X, p.Y), blue) {
			t.Errorf("pixel %v = %v, want background", p, img.At(p.X, p.Y))
		}
	}
}

func TestDrawDefaultScale(t *testing.T) {
	plan := smallPlan()
	img, err := Draw(solid(10, 10, red), plan, nil, WithBorderColor(nil))
	if err != nil {
		t.Fatal(err)
	}
	w, h := SurfaceSize(plan, PrintScale)
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h || w != 737 {
		t.Errorf("bounds = %v, want %dx%d (737)", img.Bounds(), w, h)
	}
	if !sameRGBA(img.At(0, 0), color.White) {
		t.Errorf("nil background should be white, got %v", img.At(0, 0))
	}
}

func TestSheetCopies(t *testing.T) {
	img := solid(4, 4, red)
	sheet, err := NewSheet(img, smallPlan(), blue, 1)
	if err != nil {
		t.Fatal(err)
	}

	data := sheet.PNG()
	data[0] = 0
	if sheet.PNG()[0] == 0 {
		t.Error("PNG() must return a copy")
	}
	if _, err := png.Decode(bytes.NewReader(sheet.PNG())); err != nil {
		t.Errorf("PNG() not decodable: %v", err)
	}

	clone := sheet.Image()
	clone.Set(0, 0, blue)
	if !sameRGBA(sheet.Image().At(0, 0), red) {
		t.Error("Image() must return a copy")
	}

	again, err := SheetFromPNG(sheet.PNG(), sheet.Plan, blue, 1)
	if err != nil {
		t.Fatalf("SheetFromPNG() error = %v", err)
	}
	if again.Bounds() != sheet.Bounds() || !sameRGBA(again.Image().At(3, 3), red) {
		t.Error("SheetFromPNG() did not round-trip the raster")
	}
}

func TestSheetFromPNGConvertsToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = 0x40
	}

	sheet, err := SheetFromPNG(encodePNG(t, gray), layout.Plan{}, color.White, 1)
	if err != nil {
		t.Fatalf("SheetFromPNG() error = %v", err)
	}
	img := sheet.Image()
	if img.Bounds() != gray.Bounds() {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), gray.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {3, 3}} {
		if got := img.RGBAAt(p.X, p.Y); got != (color.RGBA{0x40, 0x40, 0x40, 0xff}) {
			t.Errorf("pixel %v = %v", p, got)
		}
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSources(t *testing.T) {
	ctx := context.Background()
	data := encodePNG(t, solid(8, 6, red))

	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		src      Source
		wantCode errors.Code
		wantSize image.Point
	}{
		{"file", FileSource{Path: path}, "", image.Pt(8, 6)},
		{"bytes", BytesSource{Name: "upload.png", Data: data}, "", image.Pt(8, 6)},
		{"image", ImageSource{Image: solid(3, 3, red)}, "", image.Pt(3, 3)},
		{"missing file", FileSource{Path: filepath.Join(dir, "nope.jpg")}, errors.ErrCodeFileNotFound, image.Point{}},
		{"garbage bytes", BytesSource{Data: []byte("not an image")}, errors.ErrCodeDecode, image.Point{}},
		{"empty bytes", BytesSource{}, errors.ErrCodeResourceUnavailable, image.Point{}},
		{"nil image", ImageSource{}, errors.ErrCodeResourceUnavailable, image.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := tt.src.Decode(ctx)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("Decode() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := img.Bounds().Size(); got != tt.wantSize {
				t.Errorf("size = %v, want %v", got, tt.wantSize)
			}
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := (FileSource{Path: path}).Decode(cancelled); err != context.Canceled {
		t.Errorf("Decode(cancelled) error = %v", err)
	}
}

func TestSourceKeys(t *testing.T) {
	a := BytesSource{Data: []byte("a")}
	b := BytesSource{Data: []byte("b")}
	if SourceKey(a) == "" || SourceKey(a) == SourceKey(b) {
		t.Error("bytes sources should have distinct content keys")
	}
	if SourceKey(a) != SourceKey(BytesSource{Name: "other", Data: []byte("a")}) {
		t.Error("bytes key should depend on content only")
	}
	if SourceKey(ImageSource{Image: solid(1, 1, red)}) != "" {
		t.Error("image sources are not keyed")
	}
	if SourceKey(FileSource{Path: "/does/not/exist"}) != "" {
		t.Error("missing files have no key")
	}
}
