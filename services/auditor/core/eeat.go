package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

var (
	bylinePattern = regexp.MustCompile(`\b(?:by|written by|author:)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z.]+){1,2}\b`)
	trustKeywords = []string{
		"certified", "certification", "accredited", "licensed", "award", "years of experience",
		"years experience", "testimonial", "reviews", "guarantee", "insured", "member of",
	}
)

func eeatChecks(p *Page) []models.Check {
	return []models.Check{
		authorCheck(p),
		trustSignalsCheck(p),
		aboutLinkCheck(p),
		contactInfoCheck(p),
	}
}

func authorCheck(p *Page) models.Check {
	c := models.Check{ID: "author-info", Name: "Author Information", Weight: 15}

	author, source := findAuthor(p)
	if author != "" || source != "" {
		c.Status, c.Score = models.StatusPass, 100
		c.Value = map[string]any{"author": author, "source": source}
		c.Message = "Author information found"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 40
	c.Message = "No author information found"
	c.Recommendation = "Show the author's name and credentials on your content"
	return c
}

func findAuthor(p *Page) (author, source string) {
	if name := p.Meta("author"); name != "" {
		return evidence(name), "meta"
	}
	if _, ok := p.LinkRel("author"); ok {
		return "", "rel-author"
	}
	if sel := p.Doc.Find(`a[rel~="author"], [itemprop="author"], [class*="author"], [class*="byline"]`).First(); sel.Length() > 0 {
		return evidence(sel.Text()), "markup"
	}
	if byline := p.Byline(); byline != "" {
		return byline, "readability"
	}

	body := p.Doc.Find("body").Clone()
	body.Find("script, style").Remove()
	if match := bylinePattern.FindString(collapseSpace(body.Text())); match != "" {
		return evidence(match), "text"
	}
	return "", ""
}

func trustSignalsCheck(p *Page) models.Check {
	text := p.BodyText()
	var found []string
	for _, kw := range trustKeywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}

	c := models.Check{
		ID:     "trust-signals",
		Name:   "Trust Signals",
		Weight: 15,
		Value:  map[string]any{"signals": found},
	}
	switch {
	case len(found) >= 2:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%d trust signals found", len(found))
	case len(found) == 1:
		c.Status, c.Score = models.StatusPass, 80
		c.Message = "One trust signal found"
	default:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = "No trust signals found"
		c.Recommendation = "Mention certifications, awards, reviews or years of experience"
	}
	return c
}

func aboutLinkCheck(p *Page) models.Check {
	c := models.Check{ID: "about-link", Name: "About Page Link", Weight: 10}
	if p.Type == models.PageTypeAbout || hasLinkTo(p, "about") {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "About page is linked"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 50
	c.Message = "No link to an about page"
	c.Recommendation = "Link to an About page that explains who is behind the site"
	return c
}

func contactInfoCheck(p *Page) models.Check {
	c := models.Check{ID: "contact-info", Name: "Contact Information", Weight: 15}

	hasEmail, hasPhone := false, false
	for _, l := range p.Links() {
		lower := strings.ToLower(l.Href)
		hasEmail = hasEmail || strings.HasPrefix(lower, "mailto:")
		hasPhone = hasPhone || strings.HasPrefix(lower, "tel:")
	}
	hasPage := p.Type == models.PageTypeContact || hasLinkTo(p, "contact")
	c.Value = map[string]any{"email": hasEmail, "phone": hasPhone, "contactPage": hasPage}

	switch {
	case hasPage && (hasEmail || hasPhone):
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Contact details and a contact page are available"
	case hasPage || hasEmail || hasPhone:
		c.Status, c.Score = models.StatusPass, 80
		c.Message = "Some contact information is available"
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = "No contact information found"
		c.Recommendation = "Link to a contact page and show an email address or phone number"
	}
	return c
}

// hasLinkTo reports whether an internal link mentions the word in its path or text
func hasLinkTo(p *Page, word string) bool {
	for _, l := range p.Links() {
		if !l.Internal {
			continue
		}
		if strings.Contains(strings.ToLower(l.Href), word) || strings.Contains(strings.ToLower(l.Text), word) {
			return true
		}
	}
	return false
}
