package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/logging"
	"github.com/cnucho/gptcatalog/internal/override"
)

// SkippedFile is a discovered file that could not be loaded.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadReport describes what loading did besides producing the corpus. The
// check command reports from it.
type LoadReport struct {
	Files     int
	Skipped   []SkippedFile
	Defaulted []*catalog.Entry // English only because nothing said otherwise
	Suffixed  []*catalog.Entry
	Reconcile catalog.Report

	// Override is nil when no table was applied.
	Override       *override.Report
	OverrideSource string
}

// LoadCorpus runs every stage up to rendering: discover, load and classify
// each file, assign ids per language, reconcile names, then apply the
// override table. Only discovery failures and cancellation are errors; bad
// files and a missing override table are logged and skipped.
func LoadCorpus(ctx context.Context, cfg *config.Config, log *logging.Logger) (*catalog.Corpus, LoadReport, error) {
	var rep LoadReport

	files, err := Discover(cfg.CatalogDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, rep, fmt.Errorf("discover %s: %w", cfg.CatalogDir, err)
	}
	rep.Files = len(files)

	c := catalog.NewCorpus()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, rep, err
		}
		e, err := catalog.LoadEntry(path)
		if err != nil {
			log.Warn("Skip %s: %v", relPath(cfg.CatalogDir, path), err)
			rep.Skipped = append(rep.Skipped, SkippedFile{Path: path, Err: err})
			continue
		}
		lang, source := catalog.Classify(e, e.SourceFilename)
		e.Language = lang
		if source == catalog.SourceDefault {
			rep.Defaulted = append(rep.Defaulted, e)
		}
		log.Debug(cfg.Verbose, "Loaded %s (%s by %s)", e.SourceFilename, lang, source)
		c.Add(e)
	}

	rep.Suffixed = c.AssignIDs()
	for _, e := range rep.Suffixed {
		log.Outlier("Id collision in %s: %s -> %s (%s)", e.Language, catalog.CandidateID(e), e.ID, e.SourceFilename)
	}

	rep.Reconcile = catalog.Reconcile(c, catalog.DefaultDictionary().Merge(cfg.Translations))
	for _, e := range rep.Reconcile.Restored {
		log.Outlier("Restored English name of %s/%s: %s", e.Language, e.ID, e.NameEN)
	}
	for _, e := range rep.Reconcile.Synthesized {
		log.Debug(cfg.Verbose, "Synthesized Korean name of %s/%s: %s", e.Language, e.ID, e.NameKO)
	}

	applyOverrides(cfg, log, c, &rep)
	return c, rep, nil
}

func applyOverrides(cfg *config.Config, log *logging.Logger, c *catalog.Corpus, rep *LoadReport) {
	if cfg.OverridesPath == "" {
		return
	}
	tbl, err := override.Load(cfg.OverridesPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Info("No override table at %s; using defaults", cfg.OverridesPath)
		return
	}
	if err != nil {
		log.Warn("Override table ignored: %v", err)
		return
	}
	for _, lang := range tbl.Missing {
		log.Warn("Override table %s has no %s sheet", filepath.Base(tbl.Source), lang)
	}

	r := tbl.Apply(c.All)
	for _, p := range r.Problems {
		log.Warn("Override: %s", p)
	}
	log.Info("Override table %s: %d of %d entries matched",
		filepath.Base(tbl.Source), r.Matched, c.Len())
	rep.Override = &r
	rep.OverrideSource = tbl.Source
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
