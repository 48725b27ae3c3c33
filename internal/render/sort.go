package render

import (
	"sort"
	"strings"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/naming"
)

// primaryNameKO is the label a reader sees first on the Korean index.
func primaryNameKO(e *catalog.Entry) string {
	if s := strings.TrimSpace(e.NameKO); s != "" {
		return s
	}
	return e.DisplayNameEN()
}

// SortKO returns a sorted copy of entries for the Korean index: names
// starting with Hangul first in code point order (가나다), then the rest
// case-insensitively. Ties break on ID.
func SortKO(entries []*catalog.Entry) []*catalog.Entry {
	out := append([]*catalog.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := primaryNameKO(out[i]), primaryNameKO(out[j])
		ah, bh := naming.StartsWithHangul(a), naming.StartsWithHangul(b)
		if ah != bh {
			return ah
		}
		if !ah {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SortEN returns a sorted copy of entries for the English index, by
// English display name case-insensitively, then ID.
func SortEN(entries []*catalog.Entry) []*catalog.Entry {
	out := append([]*catalog.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(out[i].DisplayNameEN())
		b := strings.ToLower(out[j].DisplayNameEN())
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Sorted returns the index order for lang.
func Sorted(c *catalog.Corpus, lang catalog.Language) []*catalog.Entry {
	if lang == catalog.LangKO {
		return SortKO(c.KO)
	}
	return SortEN(c.EN)
}
