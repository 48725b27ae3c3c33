package render

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// pageURL joins base and a page path. Directory index pages collapse to
// their directory ("en/index.html" -> base + "/en/").
func pageURL(base, page string) string {
	base = strings.TrimRight(base, "/")
	if page == "index.html" {
		return base + "/"
	}
	if strings.HasSuffix(page, "/index.html") {
		return base + "/" + strings.TrimSuffix(page, "index.html")
	}
	return base + "/" + page
}

// Sitemap builds sitemap.xml for the written pages: index pages first in
// the given order, then the rest sorted.
func (s *Site) Sitemap(pages []string) ([]byte, error) {
	var index, rest []string
	for _, p := range pages {
		if p == s.Layout.IndexFile(catalog.LangKO) || p == s.Layout.IndexFile(catalog.LangEN) {
			index = append(index, p)
		} else {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)

	today := s.Now().UTC().Format("2006-01-02")
	set := urlSet{Xmlns: sitemapNS}
	for _, p := range append(index, rest...) {
		set.URLs = append(set.URLs, sitemapURL{Loc: pageURL(s.cfg.SiteBaseURL(), p), LastMod: today})
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Robots builds robots.txt pointing at the sitemap.
func (s *Site) Robots() []byte {
	return []byte("User-agent: *\nAllow: /\nSitemap: " + s.cfg.SiteBaseURL() + "/sitemap.xml\n")
}

// WriteSEO writes sitemap.xml and robots.txt for pages.
func (s *Site) WriteSEO(pages []string, out Output) error {
	sm, err := s.Sitemap(pages)
	if err != nil {
		return err
	}
	if err := out.WriteFile("sitemap.xml", sm); err != nil {
		return fmt.Errorf("write sitemap.xml: %w", err)
	}
	if err := out.WriteFile("robots.txt", s.Robots()); err != nil {
		return fmt.Errorf("write robots.txt: %w", err)
	}
	return nil
}
