package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLanguage(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		declared string
		want     Language
		source   LanguageSource
	}{
		{"en token", "report_en_v2.yaml", "", LangEN, SourceFilename},
		{"en token beats ko content", "report_en_v2.yaml", "ko", LangEN, SourceFilename},
		{"kr token", "guide-kr-2024.yml", "", LangKO, SourceFilename},
		{"kor token", "guide_kor.yaml", "en", LangKO, SourceFilename},
		{"no token no field", "mystery.yaml", "", LangEN, SourceDefault},
		{"green is not en", "green.yaml", "ko", LangKO, SourceField},
		{"green defaults", "green.yaml", "", LangEN, SourceDefault},
		{"field korean", "tool.yaml", "Korean", LangKO, SourceField},
		{"field english", "tool.yaml", " ENGLISH ", LangEN, SourceField},
		{"field unknown", "tool.yaml", "ja", LangEN, SourceDefault},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := &Entry{DeclaredLanguage: tc.declared}
			lang, source := Classify(e, tc.filename)
			assert.Equal(t, tc.want, lang)
			assert.Equal(t, tc.source, source)
			assert.Equal(t, tc.want, ClassifyLanguage(e, tc.filename))
		})
	}
}

func TestClassifyLanguage_IgnoresHangulContent(t *testing.T) {
	e := &Entry{NameKO: "리서치 데스크", Name: "리서치 데스크"}
	assert.Equal(t, LangEN, ClassifyLanguage(e, "desk.yaml"))
}

func TestCorpusAdd_Partitions(t *testing.T) {
	c := NewCorpus()
	c.Add(&Entry{SourceFilename: "a_en.yaml", Language: LangEN})
	c.Add(&Entry{SourceFilename: "b_ko.yaml", Language: LangKO})
	c.Add(&Entry{SourceFilename: "c.yaml", Language: LangUnknown})

	assert.Len(t, c.EN, 2)
	assert.Len(t, c.KO, 1)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, LangEN, c.EN[1].Language)
}
