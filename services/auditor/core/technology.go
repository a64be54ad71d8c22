package core

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

func technologyChecks(p *Page) []models.Check {
	return []models.Check{
		viewportCheck(p),
		doctypeCheck(p),
		langCheck(p),
		structuredDataCheck(p),
		charsetCheck(p),
	}
}

func viewportCheck(p *Page) models.Check {
	viewport := p.Meta("viewport")
	c := models.Check{
		ID:     "viewport",
		Name:   "Viewport Meta Tag",
		Weight: 15,
		Value:  map[string]any{"viewport": evidence(viewport)},
	}
	if viewport != "" {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Viewport meta tag is set"
		return c
	}
	c.Status, c.Score = models.StatusFail, 0
	c.Message = "No viewport meta tag"
	c.Recommendation = `Add <meta name="viewport" content="width=device-width, initial-scale=1">`
	return c
}

func doctypeCheck(p *Page) models.Check {
	version := p.HTMLVersion()
	c := models.Check{
		ID:     "doctype",
		Name:   "HTML5 Doctype",
		Weight: 20,
		Value:  map[string]any{"htmlVersion": version},
	}
	switch version {
	case "HTML5":
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Page uses the HTML5 doctype"
	case "Unknown":
		c.Status, c.Score = models.StatusFail, 0
		c.Message = "Page has no doctype declaration"
		c.Recommendation = "Start the document with <!DOCTYPE html>"
	default:
		c.Status, c.Score = models.StatusWarning, 60
		c.Message = "Page uses a legacy doctype (" + version + ")"
		c.Recommendation = "Switch to the HTML5 doctype <!DOCTYPE html>"
	}
	return c
}

func langCheck(p *Page) models.Check {
	lang := strings.TrimSpace(p.Doc.Find("html").AttrOr("lang", ""))
	c := models.Check{
		ID:     "lang-attribute",
		Name:   "Language Attribute",
		Weight: 8,
		Value:  map[string]any{"lang": evidence(lang)},
	}
	if lang != "" {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Document language is declared (" + evidence(lang) + ")"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 60
	c.Message = "No lang attribute on the html element"
	c.Recommendation = `Declare the page language, e.g. <html lang="en">`
	return c
}

func structuredDataCheck(p *Page) models.Check {
	jsonLD := len(p.JSONLD())
	microdata := p.Doc.Find(`[itemtype*="schema.org"]`).Length()
	c := models.Check{
		ID:     "structured-data",
		Name:   "Structured Data",
		Weight: 15,
		Value:  map[string]any{"jsonLd": jsonLD, "microdata": microdata},
	}
	if jsonLD > 0 || microdata > 0 {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Structured data found"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 40
	c.Message = "No structured data found"
	c.Recommendation = "Describe the page with schema.org JSON-LD"
	return c
}

func charsetCheck(p *Page) models.Check {
	charset := p.Doc.Find("meta[charset]").AttrOr("charset", "")
	if charset == "" {
		ct := strings.ToLower(p.Doc.Find(`meta[http-equiv]`).FilterFunction(isContentTypeMeta).AttrOr("content", ""))
		if i := strings.Index(ct, "charset="); i >= 0 {
			charset = ct[i+len("charset="):]
		}
	}
	if charset == "" {
		if i := strings.Index(strings.ToLower(p.Header("content-type")), "charset="); i >= 0 {
			charset = p.Header("content-type")[i+len("charset="):]
		}
	}

	c := models.Check{
		ID:     "charset",
		Name:   "Character Encoding",
		Weight: 5,
		Value:  map[string]any{"charset": evidence(charset)},
	}
	if charset != "" {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Character encoding is declared (" + evidence(charset) + ")"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 60
	c.Message = "No character encoding declared"
	c.Recommendation = `Add <meta charset="utf-8"> near the top of the head`
	return c
}

func isContentTypeMeta(_ int, s *goquery.Selection) bool {
	return strings.EqualFold(s.AttrOr("http-equiv", ""), "content-type")
}
