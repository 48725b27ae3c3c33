package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEntry_Fields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "research-desk_en.yaml", `
gpt_id: g-abc123
name_en: Research Desk
name_ko: 리서치 데스크
name_ko_policy: Human
url: https://chat.openai.com/g/g-abc123
one_line_en: Finds sources fast.
tags: [research, sources]
target_users: analysts
limitations:
version: 1.2
language: EN
`)

	e, err := LoadEntry(path)
	require.NoError(t, err)

	want := &Entry{
		GPTID:            "g-abc123",
		NameEN:           "Research Desk",
		NameKO:           "리서치 데스크",
		NamePolicyKO:     PolicyHuman,
		URL:              "https://chat.openai.com/g/g-abc123",
		OneLineEN:        "Finds sources fast.",
		Tags:             []string{"research", "sources"},
		TargetUsers:      []string{"analysts"},
		Version:          "1.2",
		DeclaredLanguage: "EN",
		SourceFilename:   "research-desk_en.yaml",
		SourcePath:       path,
		Language:         LangUnknown,
		Visibility:       VisibilityPublic,
		ShowURL:          URLShow,
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEntry_Wrappers(t *testing.T) {
	cases := map[string]string{
		"catalog_entry": "catalog_entry:\n  name_en: Wrapped\n",
		"gpt":           "gpt:\n  name_en: Wrapped\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			e, err := ParseEntry([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, "Wrapped", e.NameEN)
		})
	}
}

func TestParseEntry_UnwrapsOneLevelOnly(t *testing.T) {
	e, err := ParseEntry([]byte("catalog_entry:\n  gpt:\n    name_en: Deep\n  name_en: Shallow\n"))
	require.NoError(t, err)
	assert.Equal(t, "Shallow", e.NameEN)
}

func TestParseEntry_ScalarWrapperIsIgnored(t *testing.T) {
	e, err := ParseEntry([]byte("gpt: just a string\nname_en: Top\n"))
	require.NoError(t, err)
	assert.Equal(t, "Top", e.NameEN)
}

func TestParseEntry_NotMapping(t *testing.T) {
	for _, doc := range []string{"- a\n- b\n", "just text\n", "", "# only a comment\n"} {
		_, err := ParseEntry([]byte(doc))
		assert.True(t, errors.Is(err, ErrNotMapping), "doc %q: err = %v", doc, err)
	}
}

func TestParseEntry_Malformed(t *testing.T) {
	_, err := ParseEntry([]byte("name_en: [unclosed\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotMapping))
}

func TestParseEntry_ListShapes(t *testing.T) {
	e, err := ParseEntry([]byte(`
tags: single
target_users: ~
limitations:
  - one
  - null
  - 3
functions:
  - name: search
    desc: web
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"single"}, e.Tags)
	assert.Nil(t, e.TargetUsers)
	assert.Equal(t, []string{"one", "3"}, e.Limitations)
	assert.Equal(t, []string{"name: search, desc: web"}, e.Functions)
}

func TestParseEntry_LangFallbackField(t *testing.T) {
	e, err := ParseEntry([]byte("lang: ko\nname: x\n"))
	require.NoError(t, err)
	assert.Equal(t, "ko", e.DeclaredLanguage)

	e, err = ParseEntry([]byte("language: en\nlang: ko\n"))
	require.NoError(t, err)
	assert.Equal(t, "en", e.DeclaredLanguage)
}

func TestLoadEntry_MissingFile(t *testing.T) {
	_, err := LoadEntry(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadEntry_NamelessIDFromFilename(t *testing.T) {
	path := writeFile(t, t.TempDir(), "desk_en.yaml", "url: https://x\n")
	e, err := LoadEntry(path)
	require.NoError(t, err)

	assert.Equal(t, "desk-en-yaml", CandidateID(e))
	AssignIDs([]*Entry{e})
	assert.Equal(t, "desk-en-yaml", e.ID)
	assert.Equal(t, "desk-en-yaml", e.Slug)
}
