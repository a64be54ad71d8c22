package core

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/RuvinSL/seo-auditor/pkg/models"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

const maxEvidenceLength = 200

var strictPolicy = bluemonday.StrictPolicy()

// Page is a fetched document parsed once into a queryable tree.
// A Page is not safe for concurrent use.
type Page struct {
	*models.FetchedPage
	Type models.PageType
	Doc  *goquery.Document

	parsedURL *url.URL
	links     []Link
	linksDone bool
	mainWords []string
	mainDone  bool
	bodyText  string
	bodyDone  bool
}

// Link is one anchor found on the page
type Link struct {
	Href     string
	Text     string
	Rel      string
	Internal bool
	External bool
	Empty    bool
}

// NewPage parses the fetched HTML
func NewPage(fp *models.FetchedPage, pageType models.PageType) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fp.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", fp.URL, err)
	}

	u, err := url.Parse(fp.URL)
	if err != nil || u == nil {
		u = &url.URL{}
	}

	return &Page{
		FetchedPage: fp,
		Type:        pageType,
		Doc:         doc,
		parsedURL:   u,
	}, nil
}

// Host returns the lower-cased host without a leading www.
func (p *Page) Host() string {
	return strings.TrimPrefix(strings.ToLower(p.parsedURL.Hostname()), "www.")
}

// Path returns the URL path
func (p *Page) Path() string {
	return p.parsedURL.Path
}

// Title returns the whitespace-collapsed <title> text
func (p *Page) Title() string {
	return collapseSpace(p.Doc.Find("title").First().Text())
}

// Meta returns the content of the first <meta> whose name or property matches key
func (p *Page) Meta(key string) string {
	var content string
	p.Doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		prop, _ := s.Attr("property")
		if strings.EqualFold(name, key) || strings.EqualFold(prop, key) {
			content = strings.TrimSpace(s.AttrOr("content", ""))
			return false
		}
		return true
	})
	return content
}

// HasMeta reports whether a <meta> with the given name or property exists
func (p *Page) HasMeta(key string) bool {
	found := false
	p.Doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		prop, _ := s.Attr("property")
		found = strings.EqualFold(name, key) || strings.EqualFold(prop, key)
		return !found
	})
	return found
}

// LinkRel returns the href of the first <link> whose rel contains the token
func (p *Page) LinkRel(token string) (string, bool) {
	var href string
	found := false
	p.Doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, r := range strings.Fields(s.AttrOr("rel", "")) {
			if strings.EqualFold(r, token) {
				href = strings.TrimSpace(s.AttrOr("href", ""))
				found = true
				return false
			}
		}
		return true
	})
	return href, found
}

// HeadingCounts prefers the fetcher's precomputed counts
func (p *Page) HeadingCounts() models.HeadingCount {
	if p.Headings != (models.HeadingCount{}) {
		return p.Headings
	}
	return models.HeadingCount{
		H1: p.Doc.Find("h1").Length(),
		H2: p.Doc.Find("h2").Length(),
		H3: p.Doc.Find("h3").Length(),
		H4: p.Doc.Find("h4").Length(),
		H5: p.Doc.Find("h5").Length(),
		H6: p.Doc.Find("h6").Length(),
	}
}

// HeadingLevels returns heading levels (1-6) in document order
func (p *Page) HeadingLevels() []int {
	var levels []int
	p.Doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		levels = append(levels, int(name[1]-'0'))
	})
	return levels
}

// Links returns every anchor with an href attribute
func (p *Page) Links() []Link {
	if p.linksDone {
		return p.links
	}
	p.linksDone = true

	host := p.Host()
	p.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		link := Link{
			Href: href,
			Text: collapseSpace(s.Text()),
			Rel:  strings.ToLower(s.AttrOr("rel", "")),
		}
		lower := strings.ToLower(href)
		switch {
		case href == "" || href == "#" || strings.HasPrefix(lower, "javascript:"):
			link.Empty = true
		case strings.HasPrefix(lower, "mailto:"), strings.HasPrefix(lower, "tel:"), strings.HasPrefix(href, "#"):
		case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"), strings.HasPrefix(href, "//"):
			target, err := url.Parse(href)
			if err != nil {
				return
			}
			if strings.TrimPrefix(strings.ToLower(target.Hostname()), "www.") == host {
				link.Internal = true
			} else {
				link.External = true
			}
		default:
			link.Internal = true
		}
		p.links = append(p.links, link)
	})
	return p.links
}

// LinkCounts returns the internal, external and empty anchor counts
func (p *Page) LinkCounts() (internal, external, empty int) {
	for _, l := range p.Links() {
		switch {
		case l.Internal:
			internal++
		case l.External:
			external++
		case l.Empty:
			empty++
		}
	}
	return internal, external, empty
}

// MainWords returns the words of the body outside nav, header and footer
func (p *Page) MainWords() []string {
	if p.mainDone {
		return p.mainWords
	}
	p.mainDone = true

	body := p.Doc.Find("body").Clone()
	body.Find("nav, header, footer, script, style, noscript, template, svg").Remove()
	p.mainWords = strings.Fields(body.Text())
	return p.mainWords
}

// BodyText returns the visible body text, lower-cased
func (p *Page) BodyText() string {
	if p.bodyDone {
		return p.bodyText
	}
	p.bodyDone = true

	body := p.Doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()
	p.bodyText = strings.ToLower(collapseSpace(body.Text()))
	return p.bodyText
}

// JSONLD returns the raw contents of every application/ld+json script
func (p *Page) JSONLD() []string {
	var blocks []string
	p.Doc.Find("script[type]").Each(func(_ int, s *goquery.Selection) {
		if strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), "application/ld+json") {
			blocks = append(blocks, strings.TrimSpace(s.Text()))
		}
	})
	return blocks
}

// Doctype returns the document's DOCTYPE node, if any
func (p *Page) Doctype() *html.Node {
	if len(p.Doc.Nodes) == 0 {
		return nil
	}
	for n := p.Doc.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.DoctypeNode {
			return n
		}
	}
	return nil
}

// HTMLVersion identifies the document type declaration
func (p *Page) HTMLVersion() string {
	dt := p.Doctype()
	if dt == nil || !strings.EqualFold(dt.Data, "html") {
		return "Unknown"
	}

	var public string
	for _, a := range dt.Attr {
		if a.Key == "public" {
			public = strings.ToUpper(a.Val)
		}
	}

	switch {
	case public == "":
		return "HTML5"
	case strings.Contains(public, "XHTML 1.1"):
		return "XHTML 1.1"
	case strings.Contains(public, "XHTML 1.0"):
		return "XHTML 1.0"
	case strings.Contains(public, "HTML 4.01"):
		return "HTML 4.01"
	default:
		return "HTML (legacy)"
	}
}

// Byline extracts the article author, if the page reads like an article
func (p *Page) Byline() string {
	if len(p.Doc.Nodes) == 0 {
		return ""
	}
	article, err := readability.FromDocument(p.Doc.Nodes[0], p.parsedURL)
	if err != nil {
		return ""
	}
	return evidence(article.Byline)
}

// evidence strips markup from page-derived text and bounds its length
func evidence(s string) string {
	s = collapseSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
	if utf8.RuneCountInString(s) > maxEvidenceLength {
		runes := []rune(s)
		s = string(runes[:maxEvidenceLength]) + "…"
	}
	return s
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
