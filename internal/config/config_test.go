package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/srv/catalog", "/srv/catalog"},
		{"single trailing slash", "/srv/catalog/", "/srv/catalog"},
		{"multiple trailing slashes", "/srv/catalog///", "/srv/catalog"},
		{"root path", "/", "/"},
		{"relative path", "docs", "docs"},
		{"relative with slash", "docs/", "docs"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"site preset", func(c *Config) { c.Preset = PresetSite }, false},
		{"tistory preset", func(c *Config) { c.Preset = PresetTistory }, false},
		{"unknown preset", func(c *Config) { c.Preset = "wiki" }, true},
		{"empty preset", func(c *Config) { c.Preset = "" }, true},
		{"never color", func(c *Config) { c.ColorMode = ColorNever }, false},
		{"bad color", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"site url ok", func(c *Config) { c.SiteURL = "https://example.org/catalog" }, false},
		{"site url without scheme", func(c *Config) { c.SiteURL = "example.org" }, true},
		{"tistory url ftp", func(c *Config) { c.TistoryListURL = "ftp://x/y" }, true},
		{"missing catalog dir", func(c *Config) { c.CatalogDir = "" }, true},
		{"missing out dir", func(c *Config) { c.OutputDir = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePaths(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name    string
		catalog string
		out     string
		wantErr bool
	}{
		{"sibling", "/srv/catalog", "/srv/docs", false},
		{"same dir", "/srv/catalog", "/srv/catalog", true},
		{"nested", "/srv/catalog", "/srv/catalog/docs", true},
		{"prefix but not nested", "/srv/catalog", "/srv/catalog-site", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.ValidatePaths(tt.catalog, tt.out)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrOutputInsideInput), "err = %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSiteBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultPagesBaseURL, cfg.SiteBaseURL())
	cfg.SiteURL = "https://example.org/gpts/"
	assert.Equal(t, "https://example.org/gpts", cfg.SiteBaseURL())
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" GitHub ")
	require.NoError(t, err)
	assert.Equal(t, PresetGitHub, p)

	_, err = ParsePreset("wiki")
	assert.Error(t, err)
}

// newFlagSet mirrors what the build command registers.
func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	DefinePersistentFlags(fs)
	DefineBuildFlags(fs)
	DefineCheckFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(newFlagSet(t))
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.CatalogDir, cfg.CatalogDir)
	assert.Equal(t, want.OutputDir, cfg.OutputDir)
	assert.Equal(t, PresetGitHub, cfg.Preset)
	assert.Equal(t, want.Include, cfg.Include)
	assert.True(t, cfg.Clean)
	assert.True(t, cfg.WriteAtlas)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.Empty(t, cfg.ConfigFile)
	assert.NotNil(t, cfg.Translations)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gptcatalog.yaml"), []byte(`
catalog_dir: entries/
out_dir: site
preset: tistory
site_url: https://file.example
include: ["gpts/**/*.yaml"]
translations:
  Helper: 도우미
`), 0o644))
	t.Setenv("GPTCATALOG_OUT_DIR", "from-env")
	t.Setenv("GPTCATALOG_SITE_URL", "https://env.example")

	cfg, err := Load(newFlagSet(t, "--preset", "site", "--no-atlas", "--no-color"))
	require.NoError(t, err)

	assert.Equal(t, "entries", cfg.CatalogDir, "file value, trailing slash stripped")
	assert.Equal(t, "from-env", cfg.OutputDir, "env beats file")
	assert.Equal(t, "https://env.example", cfg.SiteURL)
	assert.Equal(t, PresetSite, cfg.Preset, "flag beats file")
	assert.Equal(t, []string{"gpts/**/*.yaml"}, cfg.Include)
	assert.Equal(t, "도우미", cfg.Translations["helper"])
	assert.False(t, cfg.WriteAtlas)
	assert.True(t, cfg.Clean)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "gptcatalog.yaml", filepath.Base(cfg.ConfigFile))
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(newFlagSet(t, "--config", "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	const key = "GPTCATALOG_TISTORY_LIST_URL"
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte(key+"=https://blog.example/7\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(key) })

	cfg, err := Load(newFlagSet(t))
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example/7", cfg.TistoryListURL)
}

func TestApplyArgs(t *testing.T) {
	t.Chdir(t.TempDir())
	fs := newFlagSet(t)
	require.NoError(t, ApplyArgs(fs, []string{"my-catalog/", "out/"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "my-catalog", cfg.CatalogDir)
	assert.Equal(t, "out", cfg.OutputDir)

	assert.Error(t, ApplyArgs(fs, []string{"a", "b", "c"}))
}

func TestLoad_StrictFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(newFlagSet(t, "--strict", "-v"))
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Verbose)
}
