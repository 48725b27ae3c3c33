package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cnucho/gptcatalog/internal/naming"
)

// ErrNotMapping is returned by LoadEntry when a file parses but its root
// (after unwrapping) is not a mapping.
var ErrNotMapping = errors.New("catalog entry is not a mapping")

// wrapperKeys may hold the real entry one level down. At most one wrapper
// is unwrapped, checked in this order.
var wrapperKeys = []string{"catalog_entry", "gpt"}

// record mirrors the on-disk layout of a catalog file.
type record struct {
	GPTID        text     `yaml:"gpt_id"`
	Name         text     `yaml:"name"`
	NameEN       text     `yaml:"name_en"`
	NameKO       text     `yaml:"name_ko"`
	NamePolicyKO text     `yaml:"name_ko_policy"`
	URL          text     `yaml:"url"`
	OneLine      text     `yaml:"one_line"`
	OneLineEN    text     `yaml:"one_line_en"`
	OneLineKO    text     `yaml:"one_line_ko"`
	Tags         textList `yaml:"tags"`
	TargetUsers  textList `yaml:"target_users"`
	Limitations  textList `yaml:"limitations"`
	TistoryURL   text     `yaml:"tistory_url"`
	GitHubURL    text     `yaml:"github_url"`
	Language     text     `yaml:"language"`
	Lang         text     `yaml:"lang"`

	Functions          textList `yaml:"functions"`
	IdealUseCases      textList `yaml:"ideal_use_cases"`
	ExampleCommands    textList `yaml:"example_commands"`
	AdditionalFeatures textList `yaml:"additional_features"`
	Description        text     `yaml:"description"`
	Version            text     `yaml:"version"`
	LastUpdated        text     `yaml:"last_updated"`
	Category           text     `yaml:"category"`
	Author             text     `yaml:"author"`
}

// LoadEntry reads one catalog file. The returned entry has its source
// fields filled in but no language, id or slug yet.
//
// A parse error is returned wrapped; a root (or unwrapped root) that is not
// a mapping yields ErrNotMapping. Callers skip the file in both cases.
func LoadEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	e, err := ParseEntry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	e.SourcePath = path
	e.SourceFilename = naming.NFC(filepath.Base(path))
	return e, nil
}

// ParseEntry decodes a catalog document from memory.
func ParseEntry(data []byte) (*Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document: %w", ErrNotMapping)
	}
	root := unwrap(resolveAlias(doc.Content[0]))
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	var rec record
	if err := root.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return rec.entry(), nil
}

// unwrap returns the value of the first wrapper key whose value is a
// mapping, or root itself.
func unwrap(root *yaml.Node) *yaml.Node {
	if root.Kind != yaml.MappingNode {
		return root
	}
	for _, key := range wrapperKeys {
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value != key {
				continue
			}
			if v := resolveAlias(root.Content[i+1]); v.Kind == yaml.MappingNode {
				return v
			}
		}
	}
	return root
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func (r *record) entry() *Entry {
	declared := r.Language.String()
	if strings.TrimSpace(declared) == "" {
		declared = r.Lang.String()
	}
	return &Entry{
		GPTID:              r.GPTID.String(),
		Name:               r.Name.String(),
		NameEN:             r.NameEN.String(),
		NameKO:             r.NameKO.String(),
		NamePolicyKO:       NamePolicy(strings.ToLower(strings.TrimSpace(r.NamePolicyKO.String()))),
		URL:                r.URL.String(),
		OneLine:            r.OneLine.String(),
		OneLineEN:          r.OneLineEN.String(),
		OneLineKO:          r.OneLineKO.String(),
		Tags:               r.Tags.Strings(),
		TargetUsers:        r.TargetUsers.Strings(),
		Limitations:        r.Limitations.Strings(),
		TistoryURL:         r.TistoryURL.String(),
		GitHubURL:          r.GitHubURL.String(),
		Functions:          r.Functions.Strings(),
		IdealUseCases:      r.IdealUseCases.Strings(),
		ExampleCommands:    r.ExampleCommands.Strings(),
		AdditionalFeatures: r.AdditionalFeatures.Strings(),
		Description:        r.Description.String(),
		Version:            r.Version.String(),
		LastUpdated:        r.LastUpdated.String(),
		Category:           r.Category.String(),
		Author:             r.Author.String(),
		DeclaredLanguage:   declared,
		Language:           LangUnknown,
		Visibility:         VisibilityPublic,
		ShowURL:            URLShow,
	}
}

// text decodes any scalar (string, number, bool, date) as its literal
// source text. Null becomes "". A sequence of scalars is joined with ", ";
// mappings are ignored.
type text string

func (t *text) UnmarshalYAML(n *yaml.Node) error {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			*t = ""
			return nil
		}
		*t = text(naming.NFC(n.Value))
	case yaml.SequenceNode:
		*t = text(strings.Join(scalarValues(n), ", "))
	default:
		*t = ""
	}
	return nil
}

func (t text) String() string { return string(t) }

// textList accepts a sequence, a single scalar, or null.
type textList []string

func (l *textList) UnmarshalYAML(n *yaml.Node) error {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.SequenceNode:
		*l = scalarValues(n)
	case yaml.ScalarNode:
		if n.Tag == "!!null" || n.Value == "" {
			*l = nil
			return nil
		}
		*l = textList{naming.NFC(n.Value)}
	case yaml.MappingNode:
		*l = textList{pairsText(n)}
	default:
		*l = nil
	}
	return nil
}

func (l textList) Strings() []string {
	if len(l) == 0 {
		return nil
	}
	return append([]string(nil), l...)
}

// scalarValues flattens a sequence into strings. Null items are dropped and
// mapping items are rendered as "key: value" pairs.
func scalarValues(seq *yaml.Node) []string {
	out := make([]string, 0, len(seq.Content))
	for _, item := range seq.Content {
		item = resolveAlias(item)
		switch item.Kind {
		case yaml.ScalarNode:
			if item.Tag == "!!null" {
				continue
			}
			out = append(out, naming.NFC(item.Value))
		case yaml.MappingNode:
			if s := pairsText(item); s != "" {
				out = append(out, s)
			}
		case yaml.SequenceNode:
			out = append(out, strings.Join(scalarValues(item), ", "))
		}
	}
	return out
}

func pairsText(m *yaml.Node) string {
	parts := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], resolveAlias(m.Content[i+1])
		if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			continue
		}
		parts = append(parts, naming.NFC(k.Value)+": "+naming.NFC(v.Value))
	}
	return strings.Join(parts, ", ")
}
