// Package catalog loads catalog entries, classifies them by language,
// assigns per-language identifiers and reconciles names across the corpus.
//
// The stages run in a fixed order:
//
//	LoadEntry -> ClassifyLanguage -> Corpus.Add -> AssignIDs -> Reconcile
//
// Rendering, overrides and exports consume the resulting [Corpus] and live
// in their own packages.
package catalog

import "strings"

// Language is the partition an entry belongs to.
type Language string

const (
	LangEN      Language = "en"
	LangKO      Language = "ko"
	LangUnknown Language = "unknown"
)

// NamePolicy records where an entry's Korean name came from.
type NamePolicy string

const (
	PolicyHuman NamePolicy = "human" // supplied by the source file
	PolicyAuto  NamePolicy = "auto"  // synthesized from the English name
	PolicyNone  NamePolicy = "none"  // no Korean name at all
)

// Visibility controls whether an entry gets a detail page link.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRestricted Visibility = "restricted"
)

// URLMode controls whether the external GPT link is rendered.
type URLMode string

const (
	URLShow URLMode = "show_url"
	URLHide URLMode = "hide_url"
)

// Entry is one catalog item as loaded from a single source file. Source
// fields are copied verbatim (NFC-normalized); ID, Slug and Language are
// derived, and the name fields may be rewritten by the reconciler.
type Entry struct {
	// Source fields.
	GPTID        string
	Name         string
	NameEN       string
	NameKO       string
	NamePolicyKO NamePolicy
	URL          string
	OneLine      string
	OneLineEN    string
	OneLineKO    string
	Tags         []string
	TargetUsers  []string
	Limitations  []string
	TistoryURL   string
	GitHubURL    string

	// Detail page fields.
	Functions          []string
	IdealUseCases      []string
	ExampleCommands    []string
	AdditionalFeatures []string
	Description        string // markdown
	Version            string
	LastUpdated        string
	Category           string
	Author             string

	// DeclaredLanguage is the raw "language" (else "lang") field.
	DeclaredLanguage string

	// Provenance.
	SourceFilename string // base name, used for language tokens
	SourcePath     string

	// Derived.
	Language Language
	ID       string
	Slug     string

	// Presentation, set by the override table.
	Visibility Visibility
	ShowURL    URLMode
}

// ResolvedNameEN is name_en, else the generic name. Empty when neither is
// set.
func (e *Entry) ResolvedNameEN() string {
	if s := strings.TrimSpace(e.NameEN); s != "" {
		return s
	}
	return strings.TrimSpace(e.Name)
}

// DisplayNameEN is ResolvedNameEN with the id as the last fallback.
func (e *Entry) DisplayNameEN() string {
	if s := e.ResolvedNameEN(); s != "" {
		return s
	}
	return e.ID
}

// DisplayNameKO is the Korean display name falling back to DisplayNameEN.
func (e *Entry) DisplayNameKO() string {
	if s := strings.TrimSpace(e.NameKO); s != "" {
		return s
	}
	return e.DisplayNameEN()
}

// Summary returns the one-line description for lang, falling back to the
// other language and then the generic field.
func (e *Entry) Summary(lang Language) string {
	first, second := e.OneLineEN, e.OneLineKO
	if lang == LangKO {
		first, second = e.OneLineKO, e.OneLineEN
	}
	for _, s := range []string{first, e.OneLine, second} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// AtlasID is the identifier written to the atlas: the external gpt_id when
// present, else the assigned ID.
func (e *Entry) AtlasID() string {
	if s := strings.TrimSpace(e.GPTID); s != "" {
		return s
	}
	return e.ID
}

// AtlasEligible reports whether the entry has the identifier, English name
// and URL the atlas requires.
func (e *Entry) AtlasEligible() bool {
	return e.AtlasID() != "" &&
		e.ResolvedNameEN() != "" &&
		strings.TrimSpace(e.URL) != ""
}

// Restricted reports whether the override table hid the entry's detail page.
func (e *Entry) Restricted() bool { return e.Visibility == VisibilityRestricted }

// URLHidden reports whether the external link must not be rendered.
func (e *Entry) URLHidden() bool { return e.ShowURL == URLHide }

// SetField assigns a string value to a known source field by its catalog
// key. It reports false for unknown or derived keys. List fields accept a
// comma- or pipe-separated value.
func (e *Entry) SetField(key, value string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name":
		e.Name = value
	case "name_en":
		e.NameEN = value
	case "name_ko":
		e.NameKO = value
	case "url":
		e.URL = value
	case "one_line":
		e.OneLine = value
	case "one_line_en":
		e.OneLineEN = value
	case "one_line_ko":
		e.OneLineKO = value
	case "tistory_url":
		e.TistoryURL = value
	case "github_url":
		e.GitHubURL = value
	case "description":
		e.Description = value
	case "version":
		e.Version = value
	case "last_updated":
		e.LastUpdated = value
	case "category":
		e.Category = value
	case "author":
		e.Author = value
	case "tags":
		e.Tags = splitList(value)
	case "target_users":
		e.TargetUsers = splitList(value)
	case "limitations":
		e.Limitations = splitList(value)
	default:
		return false
	}
	return true
}

func splitList(v string) []string {
	sep := ","
	if strings.Contains(v, "|") {
		sep = "|"
	}
	var out []string
	for _, part := range strings.Split(v, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
