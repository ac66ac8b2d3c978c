package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/errors"
)

var (
	oneInch  = catalog.Builtin().Photo("1inch")
	sixInch  = catalog.Builtin().Paper("6inch")
	fixedNow = time.UnixMilli(1760000000000)
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		photo catalog.PhotoSpec
		paper catalog.PaperSpec
		want  string
	}{
		{"builtin labels", oneInch, sixInch, "1-inch-6-inch-4R-1760000000000.png"},
		{"no label uses id", catalog.PhotoSpec{ID: "custom"}, catalog.PaperSpec{ID: "roll", Label: "Roll (custom)"}, "custom-Roll-1760000000000.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.photo, tt.paper, fixedNow); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilenameDiffersAcrossTimestamps(t *testing.T) {
	a := Filename(oneInch, sixInch, fixedNow)
	b := Filename(oneInch, sixInch, fixedNow.Add(time.Millisecond))
	if a == b {
		t.Errorf("names should differ, both %q", a)
	}
	for _, name := range []string{a, b} {
		if !strings.Contains(name, oneInch.DisplayName()) || !strings.Contains(name, sixInch.DisplayName()) {
			t.Errorf("%q should embed both labels", name)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := Write(dir, "sheet.png", []byte("one"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if path != filepath.Join(dir, "sheet.png") {
		t.Errorf("path = %q", path)
	}

	// Write replaces.
	if _, err := Write(dir, "sheet.png", []byte("two")); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "two" {
		t.Errorf("content = %q, want two", got)
	}

	if _, err := Write(dir, "", []byte("x")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty name error = %v, want InvalidPath", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	clock := func() time.Time { return fixedNow }

	first, err := Save(dir, oneInch, sixInch, []byte("a"), clock)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(first) != "1-inch-6-inch-4R-1760000000000.png" {
		t.Errorf("first = %q", first)
	}

	second, err := Save(dir, oneInch, sixInch, []byte("b"), clock)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(second) != "1-inch-6-inch-4R-1760000000001.png" {
		t.Errorf("second = %q, want bumped timestamp", second)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, []byte("a")) || !bytes.Equal(b, []byte("b")) {
		t.Errorf("contents = %q, %q", a, b)
	}
}

func TestSaveDefaultClock(t *testing.T) {
	path, err := Save(t.TempDir(), oneInch, sixInch, []byte("png"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, Ext) {
		t.Errorf("path %q lacks %s", path, Ext)
	}
}
