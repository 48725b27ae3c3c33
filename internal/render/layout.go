package render

import (
	"net/url"
	"path"
	"strings"

	"github.com/cnucho/gptcatalog/internal/atlas"
	"github.com/cnucho/gptcatalog/internal/catalog"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/naming"
)

// Layout maps a preset to output paths and the links between pages. All
// paths are slash-separated and relative to the output directory.
type Layout struct {
	Preset config.Preset

	index      map[catalog.Language]string
	detailDir  map[catalog.Language]string // empty map: no detail pages
	linkBase   string                      // absolute base for detail links, tistory only
	backQuery  string                      // appended to detail links as ?back=
	atlasFiles []atlas.Target
}

// NewLayout returns the layout of cfg.Preset.
//
//	github:  index.html, en/index.html, details/<id>_<lang>.html
//	site:    index.html, en/index.html, details/<id>_ko.html, en/details/<id>_en.html
//	tistory: index_ko.html, index_en.html; detail links point at the pages base URL
func NewLayout(cfg *config.Config) *Layout {
	l := &Layout{Preset: cfg.Preset}
	switch cfg.Preset {
	case config.PresetSite:
		l.index = map[catalog.Language]string{catalog.LangKO: "index.html", catalog.LangEN: "en/index.html"}
		l.detailDir = map[catalog.Language]string{catalog.LangKO: "details", catalog.LangEN: "en/details"}
		l.backQuery = cfg.TistoryListURL
		l.atlasFiles = []atlas.Target{{Path: "atlas.yaml"}, {Path: "atlas_ko.yaml", Lang: catalog.LangKO}, {Path: "en/atlas_en.yaml", Lang: catalog.LangEN}}
	case config.PresetTistory:
		l.index = map[catalog.Language]string{catalog.LangKO: "index_ko.html", catalog.LangEN: "index_en.html"}
		l.detailDir = map[catalog.Language]string{}
		l.linkBase = strings.TrimRight(cfg.PagesBaseURL, "/")
		l.atlasFiles = []atlas.Target{{Path: "atlas.yaml"}, {Path: "atlas_ko.yaml", Lang: catalog.LangKO}, {Path: "atlas_en.yaml", Lang: catalog.LangEN}}
	default:
		l.index = map[catalog.Language]string{catalog.LangKO: "index.html", catalog.LangEN: "en/index.html"}
		l.detailDir = map[catalog.Language]string{catalog.LangKO: "details", catalog.LangEN: "details"}
		l.atlasFiles = []atlas.Target{{Path: "atlas.yaml"}, {Path: "atlas_ko.yaml", Lang: catalog.LangKO}, {Path: "en/atlas_en.yaml", Lang: catalog.LangEN}}
	}
	return l
}

// IndexFile is the index page of lang.
func (l *Layout) IndexFile(lang catalog.Language) string { return l.index[lang] }

// WritesDetails reports whether the preset emits detail pages.
func (l *Layout) WritesDetails() bool { return len(l.detailDir) > 0 }

// DetailFile is where e's detail page is written, or "" when the preset
// has none.
func (l *Layout) DetailFile(e *catalog.Entry) string {
	dir, ok := l.detailDir[e.Language]
	if !ok {
		return ""
	}
	return path.Join(dir, naming.DetailFilename(e.ID, string(e.Language)))
}

// DetailHref is the link from e's index page to its detail page.
func (l *Layout) DetailHref(e *catalog.Entry) string {
	name := naming.DetailFilename(e.ID, string(e.Language))
	if l.linkBase != "" {
		return l.linkBase + "/details/" + name
	}
	href := relative(l.IndexFile(e.Language), l.DetailFile(e))
	if l.backQuery != "" {
		href += "?back=" + url.QueryEscape(l.backQuery)
	}
	return href
}

// BackHref is the link from a detail page of lang to its index page.
func (l *Layout) BackHref(lang catalog.Language) string {
	dir := l.detailDir[lang]
	return relative(path.Join(dir, "x.html"), l.IndexFile(lang))
}

// SwitchHref links the index page of lang to the other language's index.
func (l *Layout) SwitchHref(lang catalog.Language) string {
	other := catalog.LangEN
	if lang == catalog.LangEN {
		other = catalog.LangKO
	}
	return relative(l.IndexFile(lang), l.IndexFile(other))
}

// AtlasFiles lists the atlas outputs of the preset.
func (l *Layout) AtlasFiles() []atlas.Target { return l.atlasFiles }

// relative returns the link from page from to page to. Both are
// slash-separated paths under the same root.
func relative(from, to string) string {
	fromDir := strings.Split(path.Dir(from), "/")
	if fromDir[0] == "." {
		fromDir = nil
	}
	toParts := strings.Split(to, "/")
	i := 0
	for i < len(fromDir) && i < len(toParts)-1 && fromDir[i] == toParts[i] {
		i++
	}
	var b strings.Builder
	for range fromDir[i:] {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toParts[i:], "/"))
	return b.String()
}
