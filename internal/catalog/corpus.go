package catalog

// Corpus holds the entries of one build run, partitioned by language.
// EN and KO keep file-iteration order until a renderer sorts copies of
// them; All keeps every loaded entry for cross-referencing.
type Corpus struct {
	EN  []*Entry
	KO  []*Entry
	All []*Entry
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus { return &Corpus{} }

// Add appends a classified entry to its partition. Entries whose language
// is still unknown land in the English partition.
func (c *Corpus) Add(e *Entry) {
	if e.Language == LangKO {
		c.KO = append(c.KO, e)
	} else {
		if e.Language != LangEN {
			e.Language = LangEN
		}
		c.EN = append(c.EN, e)
	}
	c.All = append(c.All, e)
}

// Partition returns the entries of one language.
func (c *Corpus) Partition(lang Language) []*Entry {
	if lang == LangKO {
		return c.KO
	}
	return c.EN
}

// Len is the number of loaded entries.
func (c *Corpus) Len() int { return len(c.All) }

// AssignIDs assigns identifiers partition by partition and returns the
// entries that received a collision suffix.
func (c *Corpus) AssignIDs() []*Entry {
	var suffixed []*Entry
	for _, part := range [][]*Entry{c.KO, c.EN} {
		AssignIDs(part)
		for _, e := range part {
			if e.ID != CandidateID(e) {
				suffixed = append(suffixed, e)
			}
		}
	}
	return suffixed
}

// Lookup finds an entry by id within one partition.
func (c *Corpus) Lookup(lang Language, id string) *Entry {
	for _, e := range c.Partition(lang) {
		if e.ID == id {
			return e
		}
	}
	return nil
}
