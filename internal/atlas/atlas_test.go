package atlas

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

var fixedMeta = Meta{
	GeneratedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("KST", 9*3600)),
	BuildID:     "3f6d2c1e-0000-4000-8000-000000000001",
}

type memOutput map[string][]byte

func (m memOutput) WriteFile(name string, data []byte) error {
	m[name] = data
	return nil
}

func TestBuild_ItemShape(t *testing.T) {
	e := &catalog.Entry{
		ID:           "research-desk",
		GPTID:        "g-research",
		NameEN:       "Research Desk",
		NameKO:       "리서치 데스크",
		NamePolicyKO: catalog.PolicyAuto,
		URL:          "https://chat.openai.com/g/g-research",
		OneLineKO:    "자료 조사",
		Tags:         []string{"research"},
		TargetUsers:  []string{"analysts"},
		TistoryURL:   "https://skcho.tistory.com/1",
	}
	a, excluded := Build([]*catalog.Entry{e}, fixedMeta)
	assert.Empty(t, excluded)

	want := Document{
		Version:     "1.0",
		GeneratedAt: "2026-03-01T00:30:00Z",
		BuildID:     fixedMeta.BuildID,
		Items: []Item{{
			GPTID:       "g-research",
			Names:       Names{EN: "Research Desk", KO: "리서치 데스크", KOPolicy: "auto"},
			URL:         "https://chat.openai.com/g/g-research",
			Summary:     &Summary{KO: "자료 조사"},
			Tags:        []string{"research"},
			SuitableFor: []string{"analysts"},
			DetailPages: &DetailPages{Tistory: "https://skcho.tistory.com/1"},
		}},
	}
	if diff := cmp.Diff(want, a.Root); diff != "" {
		t.Errorf("atlas mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ExcludesIncompleteEntries(t *testing.T) {
	ok := &catalog.Entry{ID: "ok", NameEN: "OK", URL: "https://x/ok"}
	noURL := &catalog.Entry{ID: "no-url", NameEN: "No URL"}
	noName := &catalog.Entry{ID: "no-name", NameKO: "이름만", URL: "https://x/n"}

	a, excluded := Build([]*catalog.Entry{ok, noURL, noName}, fixedMeta)
	require.Len(t, a.Root.Items, 1)
	assert.Equal(t, "ok", a.Root.Items[0].GPTID, "falls back to the assigned id")
	assert.Equal(t, []*catalog.Entry{noURL, noName}, excluded)
}

func TestBuild_GenericNameIsEnglishName(t *testing.T) {
	e := &catalog.Entry{ID: "only-generic", Name: "Only Generic", URL: "https://y"}
	require.True(t, e.AtlasEligible())

	a, excluded := Build([]*catalog.Entry{e}, fixedMeta)
	assert.Empty(t, excluded)
	require.Len(t, a.Root.Items, 1)
	assert.Equal(t, Names{EN: "Only Generic"}, a.Root.Items[0].Names)

	e.NameEN = "Declared English"
	a, _ = Build([]*catalog.Entry{e}, fixedMeta)
	assert.Equal(t, "Declared English", a.Root.Items[0].Names.EN, "name_en wins over name")
}

func TestEncode_Layout(t *testing.T) {
	e := &catalog.Entry{ID: "tool", NameEN: "Tool", URL: "https://x/tool"}
	a, _ := Build([]*catalog.Entry{e}, fixedMeta)
	data, err := a.Bytes()
	require.NoError(t, err)

	want := `gpt_atlas:
  version: "1.0"
  generated_at: "2026-03-01T00:30:00Z"
  build_id: 3f6d2c1e-0000-4000-8000-000000000001
  items:
    - gpt_id: tool
      names:
        en: Tool
      url: https://x/tool
`
	assert.Equal(t, want, string(data))

	back, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, a.Root, back.Root)
}

func TestWriteAll(t *testing.T) {
	ko := []*catalog.Entry{{ID: "k", NameEN: "K", URL: "https://x/k", Language: catalog.LangKO}}
	en := []*catalog.Entry{
		{ID: "e", NameEN: "E", URL: "https://x/e", Language: catalog.LangEN},
		{ID: "bare", Language: catalog.LangEN},
	}
	out := memOutput{}
	targets := []Target{{Path: "atlas.yaml"}, {Path: "atlas_ko.yaml", Lang: catalog.LangKO}, {Path: "en/atlas_en.yaml", Lang: catalog.LangEN}}

	excluded, err := WriteAll(out, targets, ko, en, fixedMeta)
	require.NoError(t, err)
	require.Len(t, excluded, 1)
	assert.Equal(t, "bare", excluded[0].ID)

	count := func(name string) int {
		a, err := Decode(bytes.NewReader(out[name]))
		require.NoError(t, err, name)
		return len(a.Root.Items)
	}
	assert.Equal(t, 2, count("atlas.yaml"))
	assert.Equal(t, 1, count("atlas_ko.yaml"))
	assert.Equal(t, 1, count("en/atlas_en.yaml"))
}
