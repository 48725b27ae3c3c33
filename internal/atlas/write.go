package atlas

import (
	"fmt"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

// Output receives encoded files by slash-separated relative name.
type Output interface {
	WriteFile(name string, data []byte) error
}

// Target is one atlas file. An empty Lang selects every entry, Korean
// partition first.
type Target struct {
	Path string
	Lang catalog.Language
}

// WriteAll writes one atlas per target from ko and en, which are expected in
// index order. It returns every entry that no atlas could include.
func WriteAll(out Output, targets []Target, ko, en []*catalog.Entry, meta Meta) ([]*catalog.Entry, error) {
	all := append(append([]*catalog.Entry(nil), ko...), en...)
	for _, t := range targets {
		var entries []*catalog.Entry
		switch t.Lang {
		case catalog.LangKO:
			entries = ko
		case catalog.LangEN:
			entries = en
		default:
			entries = all
		}
		a, _ := Build(entries, meta)
		data, err := a.Bytes()
		if err != nil {
			return nil, err
		}
		if err := out.WriteFile(t.Path, data); err != nil {
			return nil, fmt.Errorf("write %s: %w", t.Path, err)
		}
	}
	var excluded []*catalog.Entry
	for _, e := range all {
		if !e.AtlasEligible() {
			excluded = append(excluded, e)
		}
	}
	return excluded, nil
}
