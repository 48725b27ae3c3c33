// Package config holds runtime configuration: defaults, file and environment
// loading, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrOutputInsideInput is returned by ValidatePaths when the output
// directory would be discovered as catalog input on the next run.
var ErrOutputInsideInput = errors.New("output directory must not be inside catalog directory")

// --- Enum types for validated string fields ---

// Preset selects the page layout and link style of the generated site.
type Preset string

const (
	PresetGitHub  Preset = "github"  // GitHub Pages layout (default).
	PresetSite    Preset = "site"    // Standalone site with absolute links and SEO files.
	PresetTistory Preset = "tistory" // Pages embedded from a Tistory blog post.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Default link targets used by the published catalog.
const (
	DefaultPagesBaseURL   = "https://cnucho.github.io/customgpt-catalog"
	DefaultTistoryListURL = "https://skcho.tistory.com/129"
	DefaultServeAddr      = "127.0.0.1:8088"
)

// Config holds all runtime settings. It starts from [DefaultConfig], is
// layered with the config file, GPTCATALOG_* environment variables and CLI
// flags by [Load], and is then passed by pointer to packages that need it.
type Config struct {
	// Paths.
	CatalogDir string `mapstructure:"catalog_dir"`
	OutputDir  string `mapstructure:"out_dir"`

	// Rendering.
	Preset         Preset `mapstructure:"preset"`
	SiteURL        string `mapstructure:"site_url"`         // Enables sitemap.xml and robots.txt.
	PagesBaseURL   string `mapstructure:"pages_base_url"`   // Default: DefaultPagesBaseURL.
	TistoryListURL string `mapstructure:"tistory_list_url"` // Default: DefaultTistoryListURL.

	// Inputs.
	OverridesPath string            `mapstructure:"overrides"` // .xlsx or .csv override table.
	Include       []string          `mapstructure:"include"`   // Doublestar globs, relative to CatalogDir.
	Exclude       []string          `mapstructure:"exclude"`
	Translations  map[string]string `mapstructure:"translations"` // Extra dictionary words.

	// Behavior flags.
	Clean        bool `mapstructure:"clean"` // Default: true. Cleared by --no-clean.
	DryRun       bool `mapstructure:"dry_run"`
	WriteAtlas   bool `mapstructure:"atlas"`   // Default: true. Cleared by --no-atlas.
	WriteSitemap bool `mapstructure:"sitemap"` // Default: true. Needs SiteURL.
	Strict       bool `mapstructure:"strict"`  // Diagnostics fail the run.
	Watch        bool `mapstructure:"watch"`

	// Side outputs.
	IndexWorkbook string `mapstructure:"index_workbook"` // Master override workbook for `index`.
	ExportDB      string `mapstructure:"export_db"`
	ExportCSV     string `mapstructure:"export_csv"`
	ServeAddr     string `mapstructure:"serve_addr"`

	// Display and logging.
	Verbose   bool      `mapstructure:"verbose"`
	ColorMode ColorMode `mapstructure:"color"`
	LogFile   string    `mapstructure:"log_file"`

	// ConfigFile is the file Load read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [Load] layers file, environment and flag values on top.
func DefaultConfig() Config {
	return Config{
		CatalogDir:     "catalog",
		OutputDir:      "docs",
		Preset:         PresetGitHub,
		PagesBaseURL:   DefaultPagesBaseURL,
		TistoryListURL: DefaultTistoryListURL,
		Include:        []string{"**/*.yaml", "**/*.yml"},
		Translations:   map[string]string{},
		Clean:          true,
		WriteAtlas:     true,
		WriteSitemap:   true,
		IndexWorkbook:  "gpt_index_master_override.xlsx",
		ServeAddr:      DefaultServeAddr,
		ColorMode:      ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and URLs, and requires both directories.
func (c *Config) Validate() error {
	switch c.Preset {
	case PresetGitHub, PresetSite, PresetTistory:
		// valid
	default:
		return fmt.Errorf("invalid preset %q (use 'github', 'site' or 'tistory')", c.Preset)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	for name, raw := range map[string]string{
		"site_url":         c.SiteURL,
		"pages_base_url":   c.PagesBaseURL,
		"tistory_list_url": c.TistoryListURL,
	} {
		if raw == "" {
			continue
		}
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.CatalogDir == "" || c.OutputDir == "" {
		return errors.New("need both catalog_dir and out_dir")
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved catalog directory. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(catalogAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == catalogAbs || strings.HasPrefix(outputAbs+sep, catalogAbs+sep) {
		return ErrOutputInsideInput
	}
	return nil
}

// SiteBaseURL is the absolute base used for sitemap and canonical links:
// SiteURL when set, else PagesBaseURL. The result has no trailing slash.
func (c *Config) SiteBaseURL() string {
	base := c.SiteURL
	if base == "" {
		base = c.PagesBaseURL
	}
	return strings.TrimRight(base, "/")
}
