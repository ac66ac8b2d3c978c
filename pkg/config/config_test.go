package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultPath(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)

	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(custom, appName, "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
photo = "2inch"
paper = "a4"
background = "#336699"
scale = 1.5
out_dir = "~/sheets"

[[photos]]
id = "visa_cn"
label = "CN-visa (33×48mm)"
size = { width = 3.3, height = 4.8 }
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Photo != "2inch" || cfg.Paper != "a4" || cfg.Background != "#336699" || cfg.Scale != 1.5 {
		t.Errorf("cfg = %+v", cfg)
	}
	home, _ := os.UserHomeDir()
	if cfg.OutDir != filepath.Join(home, "sheets") {
		t.Errorf("OutDir = %q, want expanded home", cfg.OutDir)
	}
	if len(cfg.Photos) != 1 || cfg.Photos[0].Size.Height != 4.8 {
		t.Errorf("Photos = %+v", cfg.Photos)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default config should be fine: %v", err)
	}
	if cfg.Photo != "" {
		t.Errorf("cfg = %+v, want zero", cfg)
	}

	_, err = Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config error = %v, want FileNotFound", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `photo = `},
		{"unknown key", `colour = "red"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".toml", tt.content)
			if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want InvalidInput", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"IDPHOTO_PHOTO":      "small2inch",
		"IDPHOTO_BACKGROUND": "gray",
		"IDPHOTO_SCALE":      "2",
	}
	cfg := Config{Photo: "1inch", Paper: "a4"}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if cfg.Photo != "small2inch" || cfg.Paper != "a4" || cfg.Background != "gray" || cfg.Scale != 2 {
		t.Errorf("cfg = %+v", cfg)
	}

	env["IDPHOTO_SCALE"] = "big"
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("ApplyEnv() error = %v, want InvalidScale", err)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "IDPHOTO_TEST_PAPER=5inch\n")
	t.Setenv("IDPHOTO_TEST_PAPER", "")
	os.Unsetenv("IDPHOTO_TEST_PAPER")

	LoadDotenv(path, filepath.Join(dir, "missing.env"))
	if got := os.Getenv("IDPHOTO_TEST_PAPER"); got != "5inch" {
		t.Errorf("IDPHOTO_TEST_PAPER = %q, want 5inch", got)
	}
}

func TestOptions(t *testing.T) {
	cfg := Config{Photo: "2inch", Orientation: "portrait", Crop: "smart"}
	opts := cfg.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Photo != "2inch" || opts.Paper != "6inch" || opts.Crop != "smart" {
		t.Errorf("opts = %+v", opts)
	}
}

func TestBuildCatalog(t *testing.T) {
	dir := t.TempDir()
	external := writeFile(t, dir, "extra.yaml", `
papers:
  - id: roll
    label: "Roll (10×30cm)"
    size: {width: 10, height: 30}
`)
	cfg := Config{
		Photos: []catalog.PhotoSpec{
			{ID: "visa_cn", Size: catalog.Dimension{Width: 3.3, Height: 4.8}},
			{ID: "broken", Size: catalog.Dimension{Width: 0, Height: 4}},
		},
		Catalog: external,
	}

	cat, skipped, err := cfg.BuildCatalog(nil)
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	if _, ok := cat.LookupPhoto("visa_cn"); !ok {
		t.Error("inline photo missing")
	}
	if _, ok := cat.LookupPaper("roll"); !ok {
		t.Error("external paper missing")
	}
	if _, ok := cat.LookupPhoto("1inch"); !ok {
		t.Error("builtin photos should remain")
	}
	if len(skipped) != 1 || skipped[0].ID != "broken" {
		t.Errorf("skipped = %v", skipped)
	}

	cfg.Catalog = filepath.Join(dir, "absent.yaml")
	if _, _, err := cfg.BuildCatalog(nil); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing catalog error = %v, want FileNotFound", err)
	}
}
