package catalog

import (
	"strings"

	"github.com/cnucho/gptcatalog/internal/naming"
)

// baseName picks the name an entry's slug is derived from. A nameless
// entry uses its whole filename, extension included: desk_en.yaml gives
// desk-en-yaml.
func baseName(e *Entry) string {
	for _, s := range []string{e.NameEN, e.Name, e.NameKO} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	if e.SourceFilename != "" {
		return e.SourceFilename
	}
	return naming.FallbackSlug
}

// CandidateID returns the id an entry would get without collisions: its
// gpt_id when present, else the slug of its best display name, sanitized.
func CandidateID(e *Entry) string {
	raw := strings.TrimSpace(e.GPTID)
	if raw == "" {
		raw = naming.Slugify(baseName(e))
	}
	return naming.SanitizeID(raw)
}

// AssignIDs sets ID and Slug on every entry of one language partition.
// Entries must be in file-iteration order; the first claim of an id keeps
// it and later ones get "-2", "-3", ... It returns the number of entries
// that needed a suffix.
func AssignIDs(entries []*Entry) int {
	resolver := naming.NewIDResolver()
	suffixed := 0
	for _, e := range entries {
		base := CandidateID(e)
		e.Slug = naming.Slugify(baseName(e))
		e.ID = resolver.Resolve(base)
		if e.ID != base {
			suffixed++
		}
	}
	return suffixed
}
