// Package pipeline orchestrates a build: discovery, loading and
// reconciliation of the catalog, then rendering, atlas and SEO output, with
// a summary report. It also hosts the bodies of the list, index and export
// commands, which share the loading stages.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/cnucho/gptcatalog/internal/atlas"
	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/display"
	"github.com/cnucho/gptcatalog/internal/logging"
	"github.com/cnucho/gptcatalog/internal/render"
	"github.com/cnucho/gptcatalog/internal/store"
)

// Replaced in tests to make output byte-stable.
var (
	now        = time.Now
	newBuildID = store.NewBuildID
)

// Run is the top-level build entry point. It loads the corpus, cleans the
// output directory when configured, writes index and detail pages, the
// atlas files and the SEO files, and returns aggregate stats. Any write
// failure aborts the run: a partial site is never reported as success.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	start := now()
	stats := RunStats{BuildID: newBuildID()}

	c, rep, err := LoadCorpus(ctx, cfg, log)
	if err != nil {
		return stats, err
	}
	fillLoadStats(&stats, c, rep)
	logBatchHeader(cfg, log, &stats)

	if stats.Loaded == 0 {
		log.Warn("No catalog entries found in %s", cfg.CatalogDir)
	}

	if cfg.Clean && !cfg.DryRun {
		moved, err := CleanOutput(cfg.OutputDir, start)
		if err != nil {
			return stats, err
		}
		if moved != "" {
			log.Warn("Output directory was locked; moved aside to %s", moved)
		}
	}

	site, err := render.New(cfg)
	if err != nil {
		return stats, err
	}
	site.Now = now
	out := NewWriter(cfg.OutputDir, cfg.DryRun, log)

	pages, err := site.Render(ctx, c, out)
	if err != nil {
		return stats, fmt.Errorf("render: %w", err)
	}
	stats.Pages = len(pages)

	if cfg.WriteAtlas {
		targets := site.Layout.AtlasFiles()
		excluded, err := atlas.WriteAll(out, targets,
			render.Sorted(c, catalog.LangKO), render.Sorted(c, catalog.LangEN),
			atlas.Meta{GeneratedAt: start, BuildID: stats.BuildID})
		if err != nil {
			return stats, fmt.Errorf("atlas: %w", err)
		}
		stats.AtlasFiles = len(targets)
		stats.AtlasExcluded = len(excluded)
		for _, e := range excluded {
			log.Debug(cfg.Verbose, "Atlas excludes %s/%s (needs gpt_id, name_en and url)", e.Language, e.ID)
		}
	}

	if cfg.WriteSitemap && cfg.SiteURL != "" {
		if err := site.WriteSEO(pages, out); err != nil {
			return stats, fmt.Errorf("seo: %w", err)
		}
	}

	stats.Written = len(out.Files())
	stats.Bytes = out.Bytes()
	stats.Elapsed = now().Sub(start)
	logSummary(cfg, log, &stats)
	return stats, nil
}

func fillLoadStats(stats *RunStats, c *catalog.Corpus, rep LoadReport) {
	stats.Files = rep.Files
	stats.Loaded = c.Len()
	stats.Skipped = len(rep.Skipped)
	stats.KO = len(c.KO)
	stats.EN = len(c.EN)
	stats.Suffixed = len(rep.Suffixed)
	stats.Restored = len(rep.Reconcile.Restored)
	stats.Synthesized = len(rep.Reconcile.Synthesized)
	if rep.Override != nil {
		stats.Overridden = rep.Override.Matched
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %s in %s", display.Plural(stats.Files, "catalog file", "catalog files"), cfg.CatalogDir)
	log.Info("Loaded %d (KO %d, EN %d), skipped %d", stats.Loaded, stats.KO, stats.EN, stats.Skipped)
	log.Info("Preset: %s -> %s", cfg.Preset, cfg.OutputDir)
	if cfg.SiteURL != "" && cfg.WriteSitemap {
		log.Info("SEO: sitemap.xml and robots.txt for %s", cfg.SiteBaseURL())
	}
	if !cfg.WriteAtlas {
		log.Info("Atlas: disabled")
	}
	if cfg.DryRun {
		log.Info("Dry run: nothing will be written")
	}
	log.Debug(cfg.Verbose, "Build id: %s", stats.BuildID)
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d pages, %d atlas files, %d files total",
		stats.Pages, stats.AtlasFiles, stats.Written)
	log.Info("Summary report:")
	log.Info("  Entries: %d (KO %d, EN %d)", stats.Loaded, stats.KO, stats.EN)
	if stats.Suffixed > 0 {
		log.Outlier("  Suffixed ids: %d", stats.Suffixed)
	}
	if stats.Restored > 0 {
		log.Outlier("  Restored English names: %d", stats.Restored)
	}
	log.Info("  Synthesized Korean names: %d", stats.Synthesized)
	if stats.Overridden > 0 {
		log.Info("  Override rows applied: %d", stats.Overridden)
	}
	if stats.AtlasExcluded > 0 {
		log.Warn("  Left out of the atlas: %d", stats.AtlasExcluded)
	}

	if cfg.DryRun {
		log.Info("  Output size: %s (dry run)", display.FormatBytes(stats.Bytes))
		return
	}
	log.Success("  Output size: %s in %s", display.FormatBytes(stats.Bytes),
		stats.Elapsed.Round(time.Millisecond))
}
