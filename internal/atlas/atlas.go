// Package atlas writes the machine-readable catalog summary (atlas.yaml):
// one item per entry that has an identifier, an English name and a URL.
package atlas

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

// Version is the atlas format version.
const Version = "1.0"

// Atlas is the document root.
type Atlas struct {
	Root Document `yaml:"gpt_atlas"`
}

// Document carries the run metadata and the items.
type Document struct {
	Version     string `yaml:"version"`
	GeneratedAt string `yaml:"generated_at"`
	BuildID     string `yaml:"build_id,omitempty"`
	Items       []Item `yaml:"items"`
}

// Item is one catalog entry in atlas form.
type Item struct {
	GPTID       string       `yaml:"gpt_id"`
	Names       Names        `yaml:"names"`
	URL         string       `yaml:"url"`
	Summary     *Summary     `yaml:"summary,omitempty"`
	Tags        []string     `yaml:"tags,omitempty"`
	SuitableFor []string     `yaml:"suitable_for,omitempty"`
	Limitations []string     `yaml:"limitations,omitempty"`
	DetailPages *DetailPages `yaml:"detail_pages,omitempty"`
}

type Names struct {
	EN       string `yaml:"en"`
	KO       string `yaml:"ko,omitempty"`
	KOPolicy string `yaml:"ko_policy,omitempty"`
}

type Summary struct {
	EN string `yaml:"en,omitempty"`
	KO string `yaml:"ko,omitempty"`
}

type DetailPages struct {
	Tistory string `yaml:"tistory,omitempty"`
	GitHub  string `yaml:"github,omitempty"`
}

// Meta stamps a generated atlas.
type Meta struct {
	GeneratedAt time.Time
	BuildID     string
}

// Build converts entries in order. Entries missing an identifier, English
// name (name_en or the generic name) or URL are left out and returned
// separately.
func Build(entries []*catalog.Entry, meta Meta) (*Atlas, []*catalog.Entry) {
	doc := Document{
		Version:     Version,
		GeneratedAt: meta.GeneratedAt.UTC().Format(time.RFC3339),
		BuildID:     meta.BuildID,
		Items:       []Item{},
	}
	var excluded []*catalog.Entry
	for _, e := range entries {
		if !e.AtlasEligible() {
			excluded = append(excluded, e)
			continue
		}
		doc.Items = append(doc.Items, itemFor(e))
	}
	return &Atlas{Root: doc}, excluded
}

func itemFor(e *catalog.Entry) Item {
	it := Item{
		GPTID:       e.AtlasID(),
		Names:       Names{EN: e.ResolvedNameEN()},
		URL:         strings.TrimSpace(e.URL),
		Tags:        e.Tags,
		SuitableFor: e.TargetUsers,
		Limitations: e.Limitations,
	}
	if ko := strings.TrimSpace(e.NameKO); ko != "" {
		it.Names.KO = ko
		it.Names.KOPolicy = string(e.NamePolicyKO)
	}
	if s := (Summary{EN: strings.TrimSpace(e.OneLineEN), KO: strings.TrimSpace(e.OneLineKO)}); s != (Summary{}) {
		it.Summary = &s
	}
	if d := (DetailPages{Tistory: strings.TrimSpace(e.TistoryURL), GitHub: strings.TrimSpace(e.GitHubURL)}); d != (DetailPages{}) {
		it.DetailPages = &d
	}
	return it
}

// Encode writes a as YAML with two-space indentation.
func (a *Atlas) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode atlas: %w", err)
	}
	return enc.Close()
}

// Bytes is Encode into memory.
func (a *Atlas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads an atlas document.
func Decode(r io.Reader) (*Atlas, error) {
	var a Atlas
	if err := yaml.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode atlas: %w", err)
	}
	return &a, nil
}
