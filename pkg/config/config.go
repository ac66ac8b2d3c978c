// Package config loads user preferences for idphoto.
//
// Preferences come from three layers, later ones winning:
//
//  1. the TOML file at [DefaultPath] (or an explicit path)
//  2. IDPHOTO_* environment variables, optionally read from a .env file
//  3. command-line flags, applied by the caller
//
// A config file looks like:
//
//	photo = "2inch"
//	paper = "a4"
//	background = "blue"
//	out_dir = "~/Pictures/idphoto"
//
//	[[photos]]
//	id = "visa_cn"
//	label = "CN-visa (33×48mm)"
//	size = { width = 3.3, height = 4.8 }
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/errors"
	"github.com/matzehuels/idphoto/pkg/pipeline"
)

const appName = "idphoto"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "IDPHOTO_"

// Config holds user preferences. Zero fields mean "use the default".
type Config struct {
	Photo       string  `toml:"photo"`
	Paper       string  `toml:"paper"`
	Orientation string  `toml:"orientation"`
	Background  string  `toml:"background"`
	Scale       float64 `toml:"scale"`
	Crop        string  `toml:"crop"`
	OutDir      string  `toml:"out_dir"`
	Catalog     string  `toml:"catalog"` // extra YAML/TOML catalog file
	LogFile     string  `toml:"log_file"`
	Printer     string  `toml:"printer"`

	Photos []catalog.PhotoSpec `toml:"photos"`
	Papers []catalog.PaperSpec `toml:"papers"`
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/idphoto/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path. An empty path means [DefaultPath],
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.OutDir = expandHome(cfg.OutDir)
	cfg.Catalog = expandHome(cfg.Catalog)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, nil
}

// LoadDotenv loads KEY=value pairs from .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides cfg with IDPHOTO_* variables looked up through getenv.
// A nil getenv means os.Getenv. Unparseable numbers are reported.
func (cfg *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	str := func(field *string, name string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*field = v
		}
	}
	str(&cfg.Photo, "PHOTO")
	str(&cfg.Paper, "PAPER")
	str(&cfg.Orientation, "ORIENTATION")
	str(&cfg.Background, "BACKGROUND")
	str(&cfg.Crop, "CROP")
	str(&cfg.OutDir, "OUT_DIR")
	str(&cfg.Catalog, "CATALOG")
	str(&cfg.LogFile, "LOG_FILE")
	str(&cfg.Printer, "PRINTER")

	if v := getenv(EnvPrefix + "SCALE"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScale, err, "%sSCALE=%q", EnvPrefix, v)
		}
		cfg.Scale = s
	}
	return nil
}

// Options returns pipeline options seeded with the configured defaults.
func (cfg Config) Options() pipeline.Options {
	return pipeline.Options{
		Photo:       cfg.Photo,
		Paper:       cfg.Paper,
		Orientation: cfg.Orientation,
		Background:  cfg.Background,
		Scale:       cfg.Scale,
		Crop:        cfg.Crop,
	}
}

// BuildCatalog overlays the inline specs and then the external catalog
// file onto base. Invalid entries are skipped and returned.
func (cfg Config) BuildCatalog(base *catalog.Catalog) (*catalog.Catalog, []catalog.Skipped, error) {
	if base == nil {
		base = catalog.Builtin()
	}
	inline, skipped := catalog.File{Photos: cfg.Photos, Papers: cfg.Papers}.Valid()
	cat := base.Merge(inline.Photos, inline.Papers)

	if cfg.Catalog == "" {
		return cat, skipped, nil
	}
	cat, more, err := cat.LoadInto(cfg.Catalog)
	if err != nil {
		return base, skipped, fmt.Errorf("load catalog: %w", err)
	}
	return cat, append(skipped, more...), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
