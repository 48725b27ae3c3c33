package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateID(t *testing.T) {
	cases := []struct {
		name  string
		entry Entry
		want  string
	}{
		{"gpt id wins", Entry{GPTID: "g-abc123", NameEN: "Desk"}, "g-abc123"},
		{"unsafe gpt id is slugified", Entry{GPTID: "My GPT!"}, "my-gpt"},
		{"name_en", Entry{NameEN: "Research Desk", Name: "Other"}, "research-desk"},
		{"generic name", Entry{Name: "Survey Coach"}, "survey-coach"},
		{"korean name only", Entry{NameKO: "리서치 데스크", SourceFilename: "desk_ko.yaml"}, "item"},
		{"filename", Entry{SourceFilename: "Data Tool_ko.yaml"}, "data-tool-ko-yaml"},
		{"filename keeps extension", Entry{URL: "https://x", SourceFilename: "desk_en.yaml"}, "desk-en-yaml"},
		{"nothing at all", Entry{}, "item"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.entry
			assert.Equal(t, tc.want, CandidateID(&e))
		})
	}
}

func TestAssignIDs_CollisionOrder(t *testing.T) {
	a := &Entry{NameEN: "Research Desk", SourceFilename: "a_en.yaml"}
	b := &Entry{NameEN: "Research Desk", SourceFilename: "b_en.yaml"}
	c := &Entry{NameEN: "research-desk", SourceFilename: "c_en.yaml"}

	suffixed := AssignIDs([]*Entry{a, b, c})

	assert.Equal(t, "research-desk", a.ID)
	assert.Equal(t, "research-desk-2", b.ID)
	assert.Equal(t, "research-desk-3", c.ID)
	assert.Equal(t, 2, suffixed)
	assert.Equal(t, "research-desk", b.Slug)
}

func TestCorpusAssignIDs_PerPartition(t *testing.T) {
	c := NewCorpus()
	en := &Entry{NameEN: "Research Desk", Language: LangEN}
	ko := &Entry{NameEN: "Research Desk", NameKO: "리서치 데스크", Language: LangKO}
	en2 := &Entry{NameEN: "Research Desk", Language: LangEN}
	c.Add(en)
	c.Add(ko)
	c.Add(en2)

	suffixed := c.AssignIDs()

	assert.Equal(t, "research-desk", en.ID)
	assert.Equal(t, "research-desk", ko.ID, "partitions never suffix each other")
	assert.Equal(t, "research-desk-2", en2.ID)
	assert.Equal(t, []*Entry{en2}, suffixed)
	assert.Same(t, en2, c.Lookup(LangEN, "research-desk-2"))
	assert.Nil(t, c.Lookup(LangKO, "research-desk-2"))
}
