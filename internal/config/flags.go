package config

// This file defines the CLI flags of each command on pflag sets owned by
// cobra. Valued flags are bound to config keys so they override file and
// environment settings only when given. Negated flags (e.g. --no-clean) are
// applied after Load unmarshals, so Config defaults hold unless set.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// flagKeys maps config keys to the flag that overrides them.
var flagKeys = map[string]string{
	"catalog_dir":      "catalog",
	"out_dir":          "out",
	"preset":           "preset",
	"site_url":         "site-url",
	"pages_base_url":   "pages-base-url",
	"tistory_list_url": "tistory-list-url",
	"overrides":        "overrides",
	"include":          "include",
	"exclude":          "exclude",
	"dry_run":          "dry-run",
	"strict":           "strict",
	"watch":            "watch",
	"index_workbook":   "workbook",
	"export_db":        "db",
	"export_csv":       "csv",
	"serve_addr":       "addr",
	"verbose":          "verbose",
	"log_file":         "log",
}

// DefinePersistentFlags registers the flags shared by every command:
// --config, --catalog, --color, --no-color, -v/--verbose, -l/--log.
func DefinePersistentFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("config", "", "Config file (default: ./gptcatalog.yaml when present)")
	fs.StringP("catalog", "c", d.CatalogDir, "Catalog directory holding the YAML entries")
	fs.Bool("color", false, "Force colored logs")
	fs.Bool("no-color", false, "Disable colored logs")
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.StringP("log", "l", "", "Append logs to file (JSON lines)")
	fs.StringSlice("include", d.Include, "Glob of catalog files to load (repeatable)")
	fs.StringSlice("exclude", nil, "Glob of catalog files to skip (repeatable)")
	fs.String("overrides", "", "Override table (.xlsx or .csv)")
}

// DefineBuildFlags registers the site build flags: output, preset, links,
// and the negated switches --no-clean, --no-atlas, --no-sitemap.
func DefineBuildFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	preset := d.Preset
	fs.StringP("out", "o", d.OutputDir, "Output directory")
	fs.VarP(&presetValue{&preset}, "preset", "p", "Page preset: github | site | tistory")
	fs.String("site-url", "", "Public site URL; enables sitemap.xml and robots.txt")
	fs.String("pages-base-url", d.PagesBaseURL, "Base URL of the published pages")
	fs.String("tistory-list-url", d.TistoryListURL, "Tistory post that lists the catalog")
	fs.BoolP("dry-run", "d", false, "Preview only; do not write files")
	fs.BoolP("watch", "w", false, "Rebuild when catalog files change")
	fs.Bool("no-clean", false, "Keep existing output instead of rebuilding from scratch")
	fs.Bool("no-atlas", false, "Do not write atlas YAML files")
	fs.Bool("no-sitemap", false, "Do not write sitemap.xml and robots.txt")
}

// DefineCheckFlags registers --strict.
func DefineCheckFlags(fs *pflag.FlagSet) {
	fs.Bool("strict", false, "Exit non-zero when any diagnostic is reported")
}

// DefineIndexFlags registers --workbook.
func DefineIndexFlags(fs *pflag.FlagSet) {
	fs.String("workbook", DefaultConfig().IndexWorkbook, "Master override workbook to create or update")
}

// DefineExportFlags registers --db and --csv.
func DefineExportFlags(fs *pflag.FlagSet) {
	fs.String("db", "", "Write a SQLite snapshot of the catalog")
	fs.String("csv", "", "Write a tidy CSV index of the catalog")
}

// DefineServeFlags registers --addr. Serve also accepts the build flags.
func DefineServeFlags(fs *pflag.FlagSet) {
	fs.String("addr", DefaultServeAddr, "Listen address of the preview server")
}

// applyNegatedFlags copies negated and override flag values into cfg
// (e.g. --no-clean -> Clean=false). Flags a command does not define are
// ignored.
func applyNegatedFlags(fs *pflag.FlagSet, cfg *Config) {
	if changedBool(fs, "no-clean") {
		cfg.Clean = false
	}
	if changedBool(fs, "no-atlas") {
		cfg.WriteAtlas = false
	}
	if changedBool(fs, "no-sitemap") {
		cfg.WriteSitemap = false
	}
	if changedBool(fs, "no-color") {
		cfg.ColorMode = ColorNever
	} else if changedBool(fs, "color") {
		cfg.ColorMode = ColorAlways
	}
}

func changedBool(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil || !f.Changed {
		return false
	}
	v, err := fs.GetBool(name)
	return err == nil && v
}

// ApplyArgs maps the optional positional arguments [catalog_dir] [out_dir]
// onto their flags so they take part in normal precedence.
func ApplyArgs(fs *pflag.FlagSet, args []string) error {
	names := []string{"catalog", "out"}
	if len(args) > len(names) {
		return fmt.Errorf("expected at most %d arguments, got %d", len(names), len(args))
	}
	for i, arg := range args {
		if fs.Lookup(names[i]) == nil {
			return fmt.Errorf("unexpected argument %q", arg)
		}
		if err := fs.Set(names[i], NormalizeDirArg(arg)); err != nil {
			return err
		}
	}
	return nil
}

// pflag.Value adapters so we can use enum types (Preset, ColorMode) with fs.Var.

type presetValue struct{ p *Preset }

func (v *presetValue) String() string { return string(*v.p) }
func (v *presetValue) Type() string   { return "preset" }
func (v *presetValue) Set(s string) error {
	p, err := ParsePreset(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

// ParsePreset converts a case-insensitive preset name.
func ParsePreset(s string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(s))) {
	case PresetGitHub:
		return PresetGitHub, nil
	case PresetSite:
		return PresetSite, nil
	case PresetTistory:
		return PresetTistory, nil
	}
	return "", fmt.Errorf("invalid preset %q (use 'github', 'site' or 'tistory')", s)
}
