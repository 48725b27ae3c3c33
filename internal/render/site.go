// Package render turns a reconciled corpus into static HTML: one index page
// per language and one detail page per entry, laid out by preset, plus the
// sitemap and robots files.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/config"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Output receives rendered files. Names are slash-separated and relative
// to the output root.
type Output interface {
	WriteFile(name string, data []byte) error
}

// Site renders pages for one configuration.
type Site struct {
	Layout *Layout

	cfg  *config.Config
	md   *Markdown
	tmpl *template.Template

	// Now stamps sitemap entries. Tests pin it.
	Now func() time.Time
}

// New parses the embedded templates and prepares the layout for cfg.Preset.
func New(cfg *config.Config) (*Site, error) {
	tmpl, err := template.New("site").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Site{
		Layout: NewLayout(cfg),
		cfg:    cfg,
		md:     NewMarkdown(),
		tmpl:   tmpl,
		Now:    time.Now,
	}, nil
}

// Render writes both index pages and, when the preset has them, every detail
// page. It returns the written page paths in write order. The context is
// checked between pages.
func (s *Site) Render(ctx context.Context, c *catalog.Corpus, out Output) ([]string, error) {
	var pages []string
	for _, lang := range []catalog.Language{catalog.LangKO, catalog.LangEN} {
		entries := Sorted(c, lang)

		data, err := s.IndexPage(lang, entries)
		if err != nil {
			return pages, err
		}
		name := s.Layout.IndexFile(lang)
		if err := out.WriteFile(name, data); err != nil {
			return pages, fmt.Errorf("write %s: %w", name, err)
		}
		pages = append(pages, name)

		if !s.Layout.WritesDetails() {
			continue
		}
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return pages, err
			}
			data, err := s.DetailPage(e)
			if err != nil {
				return pages, err
			}
			name := s.Layout.DetailFile(e)
			if err := out.WriteFile(name, data); err != nil {
				return pages, fmt.Errorf("write %s: %w", name, err)
			}
			pages = append(pages, name)
		}
	}
	return pages, nil
}

type indexItem struct {
	N          int
	Name       string
	Auto       bool
	SearchName string
	Tags       string
	One        string
	TitleHref  string
	DetailHref string
	GPTURL     string
	TistoryURL string
	GitHubURL  string
	Restricted bool
}

type indexPage struct {
	Lang           string
	L              labels
	AutoMarker     string
	Canonical      string
	Total          int
	SwitchHref     string
	TistoryListURL string
	Items          []indexItem
}

// IndexPage renders the index of lang over entries, which must already be
// in display order.
func (s *Site) IndexPage(lang catalog.Language, entries []*catalog.Entry) ([]byte, error) {
	page := indexPage{
		Lang:           string(lang),
		L:              labelSets[lang],
		AutoMarker:     AutoMarker,
		Canonical:      s.canonical(s.Layout.IndexFile(lang)),
		Total:          len(entries),
		SwitchHref:     s.Layout.SwitchHref(lang),
		TistoryListURL: s.cfg.TistoryListURL,
	}
	for i, e := range entries {
		item := indexItem{
			N:          i + 1,
			Tags:       strings.Join(e.Tags, " "),
			One:        e.Summary(lang),
			DetailHref: s.Layout.DetailHref(e),
			TistoryURL: strings.TrimSpace(e.TistoryURL),
			GitHubURL:  strings.TrimSpace(e.GitHubURL),
			Restricted: e.Restricted(),
		}
		if lang == catalog.LangKO {
			item.Name = DisplayNameKO(e)
			item.SearchName = primaryNameKO(e)
			item.Auto = e.NamePolicyKO == catalog.PolicyAuto
		} else {
			item.Name = e.DisplayNameEN()
			item.SearchName = item.Name
		}
		item.TitleHref = item.DetailHref
		if item.Restricted {
			item.TitleHref = "#"
		}
		if !e.URLHidden() {
			item.GPTURL = strings.TrimSpace(e.URL)
		}
		page.Items = append(page.Items, item)
	}
	return s.execute("index", page)
}

// DisplayNameKO is the Korean index label: "ko (en)" when both names exist
// and differ, otherwise whichever is present.
func DisplayNameKO(e *catalog.Entry) string {
	ko := strings.TrimSpace(e.NameKO)
	en := strings.TrimSpace(e.NameEN)
	if en == "" {
		en = strings.TrimSpace(e.Name)
	}
	switch {
	case ko != "" && en != "" && ko != en:
		return ko + " (" + en + ")"
	case ko != "":
		return ko
	case en != "":
		return en
	}
	return e.ID
}

type row struct{ Key, Value string }

type link struct{ Label, Href string }

type section struct {
	Title string
	Items []string
}

type detailPage struct {
	Lang           string
	L              labels
	AutoMarker     string
	Canonical      string
	Title          string
	Subtitle       string
	OtherName      string
	Auto           bool
	BackHref       string
	TistoryListURL string
	BackParam      bool
	URL            string
	GPTURL         string
	Restricted     bool
	URLHidden      bool
	Overview       []row
	Tags           []string
	Functions      []string
	Sections       []section
	Description    template.HTML
	Guides         []link
	Technical      []row
}

// DetailPage renders the detail page of e in e's language.
func (s *Site) DetailPage(e *catalog.Entry) ([]byte, error) {
	lang := e.Language
	l := labelSets[lang]
	desc, err := s.md.HTML(e.Description)
	if err != nil {
		return nil, fmt.Errorf("%s: description: %w", e.ID, err)
	}

	page := detailPage{
		Lang:           string(lang),
		L:              l,
		AutoMarker:     AutoMarker,
		Canonical:      s.canonical(s.Layout.DetailFile(e)),
		Subtitle:       e.Summary(lang),
		BackHref:       s.Layout.BackHref(lang),
		TistoryListURL: s.cfg.TistoryListURL,
		BackParam:      s.Layout.backQuery != "",
		URL:            strings.TrimSpace(e.URL),
		Restricted:     e.Restricted(),
		URLHidden:      e.URLHidden(),
		Tags:           e.Tags,
		Functions:      e.Functions,
		Description:    desc,
	}

	en := e.DisplayNameEN()
	if lang == catalog.LangKO {
		page.Title = primaryNameKO(e)
		page.Auto = e.NamePolicyKO == catalog.PolicyAuto && strings.TrimSpace(e.NameKO) != ""
		if en != page.Title {
			page.OtherName = en
		}
	} else {
		page.Title = en
		page.OtherName = strings.TrimSpace(e.NameKO)
	}
	if page.URL != "" && !page.Restricted && !page.URLHidden {
		page.GPTURL = page.URL
	}

	for _, r := range []row{
		{l.Version, e.Version},
		{l.Updated, e.LastUpdated},
		{l.Category, e.Category},
		{l.Author, e.Author},
	} {
		if r.Value = strings.TrimSpace(r.Value); r.Value != "" {
			page.Overview = append(page.Overview, r)
		}
	}
	for _, sec := range []section{
		{l.TargetUsers, e.TargetUsers},
		{l.UseCases, e.IdealUseCases},
		{l.Limitations, e.Limitations},
		{l.Examples, e.ExampleCommands},
		{l.Features, e.AdditionalFeatures},
	} {
		if len(sec.Items) > 0 {
			page.Sections = append(page.Sections, sec)
		}
	}
	if u := strings.TrimSpace(e.TistoryURL); u != "" {
		page.Guides = append(page.Guides, link{l.GuideTistory, u})
	}
	if u := strings.TrimSpace(e.GitHubURL); u != "" {
		page.Guides = append(page.Guides, link{l.GuideGitHub, u})
	}

	page.Technical = []row{
		{"id", e.ID},
		{"gpt_id", e.GPTID},
		{"visibility", string(e.Visibility)},
		{"url_mode", string(e.ShowURL)},
		{"language", string(e.Language)},
		{"name_ko_policy", string(e.NamePolicyKO)},
		{l.SourceFile, e.SourceFilename},
	}
	page.Technical = compactRows(page.Technical)
	return s.execute("detail", page)
}

func compactRows(rows []row) []row {
	out := rows[:0]
	for _, r := range rows {
		if r.Value != "" {
			out = append(out, r)
		}
	}
	return out
}

// canonical is the absolute URL of page when a site URL is configured.
func (s *Site) canonical(page string) string {
	if s.cfg.SiteURL == "" || page == "" {
		return ""
	}
	return pageURL(s.cfg.SiteBaseURL(), page)
}

func (s *Site) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
