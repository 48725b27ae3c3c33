// Package check provides catalog diagnostics (the check command) and the
// pre-build path validation (CheckPaths) shared by every command that writes
// output.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/logging"
	"github.com/cnucho/gptcatalog/internal/pipeline"
)

// Sentinel errors.
var (
	ErrCatalogDirMissing = errors.New("catalog directory not found")
	ErrNotADirectory     = errors.New("catalog path is not a directory")
	ErrFindings          = errors.New("catalog check reported findings")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Kind classifies a finding.
type Kind string

const (
	KindParse        Kind = "parse"         // file skipped
	KindDefaultLang  Kind = "default-lang"  // no filename token or language field
	KindSuffixedID   Kind = "suffixed-id"   // id collision resolved with a suffix
	KindRestoredName Kind = "restored-name" // name_en replaced from another entry
	KindAtlas        Kind = "atlas"         // left out of the atlas
	KindPolicy       Kind = "policy"        // unknown name_ko_policy
	KindOverride     Kind = "override"      // override table problem
)

// Finding is one diagnostic.
type Finding struct {
	Kind    Kind
	File    string
	Message string
}

// Report is the result of a check run.
type Report struct {
	Files    int
	Entries  int
	Findings []Finding
}

// Count returns the number of findings of kind.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// CheckPaths is the pre-build validation: the catalog directory must exist
// and the output directory must not sit inside it, compared after resolving
// symlinks.
func CheckPaths(cfg *config.Config) error {
	fi, err := os.Stat(cfg.CatalogDir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrCatalogDirMissing, cfg.CatalogDir)
	}
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, cfg.CatalogDir)
	}
	catalogAbs, err := resolve(cfg.CatalogDir)
	if err != nil {
		return err
	}
	outputAbs, err := resolve(cfg.OutputDir)
	if err != nil {
		return err
	}
	return cfg.ValidatePaths(catalogAbs, outputAbs)
}

// resolve returns the absolute path with symlinks resolved. A path that
// does not exist yet resolves through its nearest existing parent.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var missing []string
	for {
		real, err := filepath.EvalSymlinks(abs)
		if err == nil {
			return filepath.Join(append([]string{real}, missing...)...), nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return filepath.Join(append([]string{abs}, missing...)...), nil
		}
		missing = append([]string{filepath.Base(abs)}, missing...)
		abs = parent
	}
}

// Analyze turns what loading reported into findings. It never touches the
// filesystem.
func Analyze(c *catalog.Corpus, rep pipeline.LoadReport) Report {
	r := Report{Files: rep.Files, Entries: c.Len()}
	add := func(kind Kind, file, format string, args ...interface{}) {
		r.Findings = append(r.Findings, Finding{Kind: kind, File: file, Message: fmt.Sprintf(format, args...)})
	}

	for _, s := range rep.Skipped {
		add(KindParse, filepath.Base(s.Path), "%v", s.Err)
	}
	for _, e := range rep.Defaulted {
		add(KindDefaultLang, e.SourceFilename, "no language token or field; treated as en")
	}
	for _, e := range rep.Suffixed {
		add(KindSuffixedID, e.SourceFilename, "%s id %q taken; assigned %q", e.Language, catalog.CandidateID(e), e.ID)
	}
	for _, e := range rep.Reconcile.Restored {
		add(KindRestoredName, e.SourceFilename, "name_en restored to %q from url %s", e.NameEN, e.URL)
	}
	for _, e := range c.All {
		switch e.NamePolicyKO {
		case catalog.PolicyHuman, catalog.PolicyAuto, catalog.PolicyNone, "":
		default:
			add(KindPolicy, e.SourceFilename, "unknown name_ko_policy %q", e.NamePolicyKO)
		}
		if !e.AtlasEligible() {
			add(KindAtlas, e.SourceFilename, "left out of the atlas: missing %s", strings.Join(missingAtlasFields(e), ", "))
		}
	}
	if rep.Override != nil {
		for _, p := range rep.Override.Problems {
			add(KindOverride, filepath.Base(rep.OverrideSource), "%s", p)
		}
	}

	sort.SliceStable(r.Findings, func(i, j int) bool { return r.Findings[i].Kind < r.Findings[j].Kind })
	return r
}

func missingAtlasFields(e *catalog.Entry) []string {
	var missing []string
	if e.AtlasID() == "" {
		missing = append(missing, "gpt_id")
	}
	if e.ResolvedNameEN() == "" {
		missing = append(missing, "name_en")
	}
	if strings.TrimSpace(e.URL) == "" {
		missing = append(missing, "url")
	}
	return missing
}

// RunCheck runs the check flow: path validation, then a full load of the
// catalog with every finding logged by kind. It is informational unless
// cfg.Strict is set, in which case any finding returns ErrFindings.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) (Report, error) {
	log.Info("=== Catalog Check ===")

	if err := CheckPaths(cfg); err != nil {
		log.Error("Paths: %v", err)
		return Report{}, err
	}
	log.Success("Paths: %s -> %s", cfg.CatalogDir, cfg.OutputDir)

	c, rep, err := pipeline.LoadCorpus(ctx, cfg, logging.Discard())
	if err != nil {
		log.Error("Load failed: %v", err)
		return Report{}, err
	}
	log.Info("Loaded %d of %d files (KO %d, EN %d)", c.Len(), rep.Files, len(c.KO), len(c.EN))
	if rep.Override != nil {
		log.Info("Override table %s matched %d entries", rep.OverrideSource, rep.Override.Matched)
	}

	r := Analyze(c, rep)
	for _, f := range r.Findings {
		switch f.Kind {
		case KindParse, KindOverride, KindPolicy:
			log.Error("[%s] %s: %s", f.Kind, f.File, f.Message)
		default:
			log.Warn("[%s] %s: %s", f.Kind, f.File, f.Message)
		}
	}

	if len(r.Findings) == 0 {
		log.Success("No findings")
		return r, nil
	}
	log.Info("%d findings", len(r.Findings))
	if cfg.Strict {
		return r, fmt.Errorf("%w (%d)", ErrFindings, len(r.Findings))
	}
	return r, nil
}
