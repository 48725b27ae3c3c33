package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (GPTCATALOG_OUT_DIR, ...).
const EnvPrefix = "GPTCATALOG"

// Load builds the effective configuration for one command. Precedence,
// lowest first: DefaultConfig, gptcatalog.yaml (or --config), .env and
// process environment, then flags the user actually set. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()
	if fs == nil {
		fs = pflag.NewFlagSet("none", pflag.ContinueOnError)
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, &cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := ""
	if f := fs.Lookup("config"); f != nil {
		explicit = f.Value.String()
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("gptcatalog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	for key, name := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	// Every key has a default, so decoding into a zero value loses nothing
	// and keeps default slices and maps from merging with configured ones.
	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg = out
	cfg.ConfigFile = used

	applyNegatedFlags(fs, &cfg)
	cfg.CatalogDir = NormalizeDirArg(cfg.CatalogDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	if cfg.Translations == nil {
		cfg.Translations = map[string]string{}
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("catalog_dir", d.CatalogDir)
	v.SetDefault("out_dir", d.OutputDir)
	v.SetDefault("preset", string(d.Preset))
	v.SetDefault("site_url", d.SiteURL)
	v.SetDefault("pages_base_url", d.PagesBaseURL)
	v.SetDefault("tistory_list_url", d.TistoryListURL)
	v.SetDefault("overrides", d.OverridesPath)
	v.SetDefault("include", d.Include)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("translations", d.Translations)
	v.SetDefault("clean", d.Clean)
	v.SetDefault("dry_run", d.DryRun)
	v.SetDefault("atlas", d.WriteAtlas)
	v.SetDefault("sitemap", d.WriteSitemap)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("index_workbook", d.IndexWorkbook)
	v.SetDefault("export_db", d.ExportDB)
	v.SetDefault("export_csv", d.ExportCSV)
	v.SetDefault("serve_addr", d.ServeAddr)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("color", string(d.ColorMode))
	v.SetDefault("log_file", d.LogFile)
}
