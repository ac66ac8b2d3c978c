package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/idphoto/pkg/errors"
)

// File is the on-disk shape of a custom catalog:
//
//	[[photos]]
//	id = "passport_in"
//	label = "IN-passport (35×45mm)"
//	size = { width = 3.5, height = 4.5 }
type File struct {
	Photos []PhotoSpec `yaml:"photos" toml:"photos"`
	Papers []PaperSpec `yaml:"papers" toml:"papers"`
}

// Skipped describes a custom entry that was rejected while loading.
type Skipped struct {
	Kind   string // "photo" or "paper"
	ID     string
	Reason error
}

func (s Skipped) String() string {
	return fmt.Sprintf("%s %q: %s", s.Kind, s.ID, errors.UserMessage(s.Reason))
}

// Load reads custom specs from a YAML (.yaml, .yml) or TOML (.toml) file.
// Invalid entries are dropped from the returned File and listed in skipped.
func Load(path string) (f File, skipped []Skipped, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog file %s", path)
		}
		return File{}, nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes catalog data in the format named by ext (with or without the
// leading dot).
func Parse(data []byte, ext string) (File, []Skipped, error) {
	var f File
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return File{}, nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse yaml catalog")
		}
	case "toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return File{}, nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse toml catalog")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return File{}, nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown catalog key %q", undecoded[0].String())
		}
	default:
		return File{}, nil, errors.New(errors.ErrCodeUnsupported, "unsupported catalog format %q (want .yaml, .yml or .toml)", ext)
	}

	f, skipped := f.Valid()
	return f, skipped, nil
}

// Valid returns f without the entries that have an invalid id or a
// non-positive size, and lists what it dropped.
func (f File) Valid() (File, []Skipped) {
	var skipped []Skipped
	f.Photos, skipped = keepValid("photo", f.Photos, skipped)
	f.Papers, skipped = keepValid("paper", f.Papers, skipped)
	return f, skipped
}

func keepValid(kind string, specs []Spec, skipped []Skipped) ([]Spec, []Skipped) {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if err := validateSpec(s); err != nil {
			skipped = append(skipped, Skipped{Kind: kind, ID: s.ID, Reason: err})
			continue
		}
		out = append(out, s)
	}
	return out, skipped
}

func validateSpec(s Spec) error {
	if err := errors.ValidateSpecID(s.ID); err != nil {
		return err
	}
	return errors.ValidateDimension(s.Size.Width, s.Size.Height)
}

// LoadInto loads path and overlays its entries onto c.
func (c *Catalog) LoadInto(path string) (*Catalog, []Skipped, error) {
	f, skipped, err := Load(path)
	if err != nil {
		return c, nil, err
	}
	return c.Merge(f.Photos, f.Papers), skipped, nil
}
