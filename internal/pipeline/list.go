package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/display"
	"github.com/cnucho/gptcatalog/internal/logging"
	"github.com/cnucho/gptcatalog/internal/render"
)

// Column cap of the list table, in terminal cells.
const listMaxWidth = 40

// List loads the corpus and prints one row per entry in index order, KO
// first, with notes on anything the build repaired or will leave out, then
// a summary.
func List(ctx context.Context, cfg *config.Config, log *logging.Logger, w io.Writer) error {
	c, rep, err := LoadCorpus(ctx, cfg, log)
	if err != nil {
		return err
	}
	if c.Len() == 0 {
		log.Warn("No catalog entries found in %s", cfg.CatalogDir)
		return nil
	}

	notes := entryNotes(rep)
	t := &display.Table{
		Header:   []string{"Lang", "ID", "Name (KO)", "Name (EN)", "KO policy", "Notes"},
		MaxWidth: listMaxWidth,
	}
	var flagged int
	for _, lang := range []catalog.Language{catalog.LangKO, catalog.LangEN} {
		for _, e := range render.Sorted(c, lang) {
			n := notes[e]
			if !e.AtlasEligible() {
				n = append(n, "no-atlas")
			}
			if e.Restricted() {
				n = append(n, "restricted")
			}
			if e.URLHidden() {
				n = append(n, "hide-url")
			}
			if len(n) > 0 {
				flagged++
			}
			t.Append(string(e.Language), e.ID, e.NameKO, e.NameEN, string(e.NamePolicyKO), strings.Join(n, ","))
		}
	}
	if err := t.Render(w); err != nil {
		return err
	}
	fmt.Fprintln(w)

	printListSummary(log, c, rep, flagged)
	return nil
}

// entryNotes indexes the per-entry findings of the loading stages.
func entryNotes(rep LoadReport) map[*catalog.Entry][]string {
	notes := map[*catalog.Entry][]string{}
	add := func(entries []*catalog.Entry, note string) {
		for _, e := range entries {
			notes[e] = append(notes[e], note)
		}
	}
	add(rep.Defaulted, "default-en")
	add(rep.Suffixed, "suffixed")
	add(rep.Reconcile.Restored, "restored-en")
	add(rep.Reconcile.Synthesized, "auto-ko")
	return notes
}

func printListSummary(log *logging.Logger, c *catalog.Corpus, rep LoadReport, flagged int) {
	log.Info("Listed %s (KO %d, EN %d)", display.Plural(c.Len(), "entry", "entries"), len(c.KO), len(c.EN))
	if len(rep.Skipped) > 0 {
		log.Warn("  %s could not be loaded", display.Plural(len(rep.Skipped), "file", "files"))
	}
	if n := len(rep.Suffixed) + len(rep.Reconcile.Restored); n > 0 {
		log.Outlier("  %d repaired (suffixed ids or restored names)", n)
	}
	if flagged == 0 {
		log.Success("  Nothing to note")
	}
}
