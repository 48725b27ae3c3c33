package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/logging"
	"github.com/cnucho/gptcatalog/internal/override"
	"github.com/cnucho/gptcatalog/internal/render"
	"github.com/cnucho/gptcatalog/internal/store"
)

// ErrNothingToExport is returned by Export when neither target is set.
var ErrNothingToExport = errors.New("nothing to export: set --db and/or --csv")

// Export loads the corpus and writes the SQLite snapshot and/or the tidy CSV
// named by cfg.ExportDB and cfg.ExportCSV.
func Export(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	if cfg.ExportDB == "" && cfg.ExportCSV == "" {
		return ErrNothingToExport
	}
	c, _, err := LoadCorpus(ctx, cfg, log)
	if err != nil {
		return err
	}

	if cfg.ExportDB != "" {
		if cfg.DryRun {
			log.Info("[DRY] Would snapshot %d entries to %s", c.Len(), cfg.ExportDB)
		} else if err := exportDB(ctx, cfg, log, c); err != nil {
			return err
		}
	}
	if cfg.ExportCSV != "" {
		if cfg.DryRun {
			log.Info("[DRY] Would write %d rows to %s", c.Len(), cfg.ExportCSV)
		} else {
			if err := store.ExportCSV(cfg.ExportCSV, c); err != nil {
				return fmt.Errorf("export csv: %w", err)
			}
			log.Success("Tidy CSV written: %s (%d rows)", cfg.ExportCSV, c.Len())
		}
	}
	return nil
}

func exportDB(ctx context.Context, cfg *config.Config, log *logging.Logger, c *catalog.Corpus) error {
	db, err := store.Open(store.Config{Path: cfg.ExportDB})
	if err != nil {
		return err
	}
	defer db.Close()

	meta := store.Meta{BuildID: newBuildID(), GeneratedAt: now(), CatalogDir: cfg.CatalogDir}
	n, err := store.Snapshot(ctx, db, c, meta)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	log.Success("Snapshot %s: %d entries (build %s)", cfg.ExportDB, n, meta.BuildID)
	return nil
}

// SyncIndex upserts the catalog into the master override workbook. The
// corpus is loaded without the override table so the snapshot columns hold
// what the catalog files say.
func SyncIndex(ctx context.Context, cfg *config.Config, log *logging.Logger) (override.SyncReport, error) {
	raw := *cfg
	raw.OverridesPath = ""
	c, _, err := LoadCorpus(ctx, &raw, log)
	if err != nil {
		return override.SyncReport{Path: cfg.IndexWorkbook}, err
	}
	ko := render.Sorted(c, catalog.LangKO)
	en := render.Sorted(c, catalog.LangEN)

	if cfg.DryRun {
		log.Info("[DRY] Would sync %d KO and %d EN entries into %s", len(ko), len(en), cfg.IndexWorkbook)
		return override.SyncReport{Path: cfg.IndexWorkbook}, nil
	}
	rep, err := override.SyncWorkbook(cfg.IndexWorkbook, ko, en, now())
	if err != nil {
		return rep, err
	}
	for _, s := range []struct {
		name string
		r    override.SheetReport
	}{{override.SheetKO, rep.KO}, {override.SheetEN, rep.EN}} {
		log.Info("%s: %d added, %d updated, %d changed, %d missing from catalog",
			s.name, s.r.Added, s.r.Updated, s.r.Changed, s.r.Missing)
	}
	log.Success("Index workbook saved: %s", rep.Path)
	return rep, nil
}
