package catalog

import (
	"strings"

	"github.com/cnucho/gptcatalog/internal/naming"
)

// Report lists the entries each reconciler pass changed.
type Report struct {
	Restored    []*Entry
	Synthesized []*Entry
}

// Reconcile runs the corpus-wide passes over every loaded entry. English
// names are restored before Korean names are synthesized, so synthesis sees
// the repaired English text.
func Reconcile(c *Corpus, dict Dictionary) Report {
	index := BuildCanonicalEnglishNameIndex(c.All)
	return Report{
		Restored:    restoreEnglishNames(c.All, index),
		Synthesized: synthesizeKoreanNames(c.All, dict),
	}
}

// BuildCanonicalEnglishNameIndex maps each url to the first English-looking
// name_en seen for it. Later entries never overwrite an indexed url.
func BuildCanonicalEnglishNameIndex(all []*Entry) map[string]string {
	index := make(map[string]string)
	for _, e := range all {
		url := strings.TrimSpace(e.URL)
		name := strings.TrimSpace(e.NameEN)
		if url == "" || !naming.IsProbablyEnglishName(name) {
			continue
		}
		if _, ok := index[url]; !ok {
			index[url] = name
		}
	}
	return index
}

// RestoreEnglishNames replaces name_en on entries whose English name is
// not English (typically a Korean string written into the wrong field)
// with the canonical name indexed for their url. It returns the number of
// entries changed.
func RestoreEnglishNames(all []*Entry, index map[string]string) int {
	return len(restoreEnglishNames(all, index))
}

func restoreEnglishNames(all []*Entry, index map[string]string) []*Entry {
	var changed []*Entry
	for _, e := range all {
		url := strings.TrimSpace(e.URL)
		if url == "" || naming.IsProbablyEnglishName(e.NameEN) {
			continue
		}
		canonical, ok := index[url]
		if !ok {
			continue
		}
		e.NameEN = canonical
		changed = append(changed, e)
	}
	return changed
}

// SynthesizeKoreanNames fills in name_ko for entries that lack one by
// translating name_en (or the generic name) through dict, and marks them
// auto. Entries that already have a Korean name keep it along with their
// declared policy, which defaults to human; a declared none is also read as
// human since the name is present. It returns the number of names
// synthesized.
func SynthesizeKoreanNames(all []*Entry, dict Dictionary) int {
	return len(synthesizeKoreanNames(all, dict))
}

func synthesizeKoreanNames(all []*Entry, dict Dictionary) []*Entry {
	var changed []*Entry
	for _, e := range all {
		if strings.TrimSpace(e.NameKO) != "" {
			if e.NamePolicyKO == "" || e.NamePolicyKO == PolicyNone {
				e.NamePolicyKO = PolicyHuman
			}
			continue
		}
		source := e.NameEN
		if strings.TrimSpace(source) == "" {
			source = e.Name
		}
		ko := dict.Translate(source)
		if ko == "" {
			e.NamePolicyKO = PolicyNone
			continue
		}
		e.NameKO = ko
		e.NamePolicyKO = PolicyAuto
		changed = append(changed, e)
	}
	return changed
}
