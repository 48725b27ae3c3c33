// Package override reads the hand-maintained override table (an .xlsx
// workbook or a .csv file) and applies it to reconciled entries, and keeps
// the master override workbook in sync with the catalog.
package override

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/naming"
)

// ErrNoSheet is returned when a workbook has none of the expected sheets.
var ErrNoSheet = errors.New("no override sheet found")

// Record is one table row keyed by lower-cased header.
type Record map[string]string

// Get returns the first non-empty value among keys.
func (r Record) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// Table holds override rows per language. Each row is reachable by its raw
// gpt_id and by the sanitized form of it.
type Table struct {
	Source string
	rows   map[catalog.Language]map[string]Record
	// Missing lists languages whose sheet was not found.
	Missing []catalog.Language
}

// NewTable returns an empty table.
func NewTable(source string) *Table {
	return &Table{
		Source: source,
		rows: map[catalog.Language]map[string]Record{
			catalog.LangEN: {},
			catalog.LangKO: {},
		},
	}
}

// Add stores rec for lang. Rows without a gpt_id are ignored.
func (t *Table) Add(lang catalog.Language, rec Record) bool {
	raw := strings.TrimSpace(rec["gpt_id"])
	if raw == "" {
		return false
	}
	t.rows[lang][raw] = rec
	t.rows[lang][naming.SanitizeID(raw)] = rec
	return true
}

// Len is the number of distinct rows of lang.
func (t *Table) Len(lang catalog.Language) int {
	seen := map[string]bool{}
	for _, rec := range t.rows[lang] {
		seen[rec["gpt_id"]] = true
	}
	return len(seen)
}

// Lookup finds the row of lang for e: by assigned ID first, then by gpt_id.
func (t *Table) Lookup(lang catalog.Language, e *catalog.Entry) Record {
	part := t.rows[lang]
	if rec, ok := part[e.ID]; ok {
		return rec
	}
	if g := strings.TrimSpace(e.GPTID); g != "" {
		if rec, ok := part[g]; ok {
			return rec
		}
	}
	return nil
}

// Report summarizes what Apply changed.
type Report struct {
	Matched  int
	Renamed  int
	Problems []string
}

// Apply overlays the table on entries:
//
//   - EN row name / display_name_en replaces NameEN
//   - KO row ko_alias / alias_ko, else name / display_name_ko, replaces NameKO
//   - visibility (viz1) and URL mode (viz2) come from the row of the entry's
//     own language, else the other one
//   - url_override replaces URL
//   - extra_fields, a JSON object, is merged onto known fields
//
// Entries without a row keep the public / show_url defaults.
func (t *Table) Apply(entries []*catalog.Entry) Report {
	var rep Report
	for _, e := range entries {
		recEN := t.Lookup(catalog.LangEN, e)
		recKO := t.Lookup(catalog.LangKO, e)
		if recEN == nil && recKO == nil {
			continue
		}
		rep.Matched++

		if v := recEN.Get("name", "display_name_en"); v != "" && v != e.NameEN {
			e.NameEN = v
			rep.Renamed++
		}
		if v := recKO.Get("ko_alias", "alias_ko", "name", "display_name_ko"); v != "" && v != e.NameKO {
			e.NameKO = v
			e.NamePolicyKO = catalog.PolicyHuman
			rep.Renamed++
		}

		src := recKO
		if e.Language != catalog.LangKO || src == nil {
			src = recEN
		}
		if src == nil {
			src = recKO
		}

		if v := strings.ToLower(src.Get("viz1", "visibility")); v != "" {
			switch catalog.Visibility(v) {
			case catalog.VisibilityPublic, catalog.VisibilityRestricted:
				e.Visibility = catalog.Visibility(v)
			default:
				rep.Problems = append(rep.Problems, fmt.Sprintf("%s: unknown visibility %q", e.ID, v))
			}
		}
		if v := strings.ToLower(src.Get("viz2", "show_url")); v != "" {
			switch catalog.URLMode(v) {
			case catalog.URLShow, catalog.URLHide:
				e.ShowURL = catalog.URLMode(v)
			default:
				rep.Problems = append(rep.Problems, fmt.Sprintf("%s: unknown url mode %q", e.ID, v))
			}
		}
		if v := src.Get("url_override"); v != "" {
			e.URL = v
		}
		if v := src.Get("extra_fields"); v != "" {
			rep.Problems = append(rep.Problems, applyExtra(e, v)...)
		}
	}
	return rep
}

func applyExtra(e *catalog.Entry, raw string) []string {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return []string{fmt.Sprintf("%s: extra_fields: %v", e.ID, err)}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var problems []string
	for _, k := range keys {
		if !e.SetField(k, stringify(obj[k])) {
			problems = append(problems, fmt.Sprintf("%s: extra_fields: unknown field %q", e.ID, k))
		}
	}
	return problems
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []any:
		parts := make([]string, 0, len(x))
		for _, p := range x {
			parts = append(parts, stringify(p))
		}
		return strings.Join(parts, "|")
	default:
		return fmt.Sprint(x)
	}
}
