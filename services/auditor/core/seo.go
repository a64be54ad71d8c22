package core

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

var stemSuffixes = []string{"ing", "tion", "ment", "ness", "able", "er", "ed", "es", "s"}

func seoChecks(p *Page) []models.Check {
	return []models.Check{
		titleCheck(p),
		metaDescriptionCheck(p),
		headingStructureCheck(p),
		keywordPlacementCheck(p),
		urlOptimizationCheck(p),
		internalLinkingCheck(p),
		imageAltCheck(p),
		thinContentCheck(p),
		canonicalURLCheck(p),
	}
}

func titleCheck(p *Page) models.Check {
	title := p.Title()
	length := utf8.RuneCountInString(title)
	c := models.Check{
		ID:     "title-tag",
		Name:   "Title Tag",
		Weight: 12,
		Value:  map[string]any{"title": evidence(title), "length": length},
	}

	th := Thresholds
	switch {
	case length == 0:
		c.Status, c.Score = models.StatusFail, 0
		c.Message = "Page has no title tag"
		c.Recommendation = "Add a unique, descriptive <title> of 30-60 characters"
	case length >= th.TitleMinLength && length <= th.TitleMaxLength:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("Title length is optimal (%d characters)", length)
	default:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("Title is %d characters, outside the %d-%d range", length, th.TitleMinLength, th.TitleMaxLength)
		c.Recommendation = fmt.Sprintf("Adjust the title to %d-%d characters", th.TitleMinLength, th.TitleMaxLength)
	}
	return c
}

func metaDescriptionCheck(p *Page) models.Check {
	desc := p.Meta("description")
	length := utf8.RuneCountInString(desc)
	c := models.Check{
		ID:     "meta-description",
		Name:   "Meta Description",
		Weight: 10,
		Value:  map[string]any{"description": evidence(desc), "length": length},
	}

	th := Thresholds
	switch {
	case length == 0:
		c.Status, c.Score = models.StatusFail, 0
		c.Message = "Page has no meta description"
		c.Recommendation = "Write a meta description of 120-160 characters summarising the page"
	case length >= th.MetaDescMinLength && length <= th.MetaDescMaxLength:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("Meta description length is optimal (%d characters)", length)
	default:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("Meta description is %d characters, outside the %d-%d range", length, th.MetaDescMinLength, th.MetaDescMaxLength)
		c.Recommendation = fmt.Sprintf("Adjust the meta description to %d-%d characters", th.MetaDescMinLength, th.MetaDescMaxLength)
	}
	return c
}

func headingStructureCheck(p *Page) models.Check {
	h := p.HeadingCounts()
	c := models.Check{
		ID:     "heading-structure",
		Name:   "Heading Structure",
		Weight: 10,
		Value:  map[string]any{"h1": h.H1, "h2": h.H2, "h3": h.H3},
	}

	if h.H1 == 1 {
		c.Score += 50
	}
	if h.H2 > 0 {
		c.Score += 30
	}
	if h.H3 > 0 {
		c.Score += 20
	}
	// a missing or repeated H1 caps the score
	if h.H1 != 1 && c.Score > 20 {
		c.Score = 20
	}

	switch {
	case h.H1 == 1 && h.H2 > 0:
		c.Status = models.StatusPass
		c.Message = "Heading hierarchy is well structured"
	case h.H1 == 1:
		c.Status = models.StatusWarning
		c.Message = "Single H1 found but no H2 subheadings"
		c.Recommendation = "Break the content into sections with H2 subheadings"
	case h.H1 == 0:
		c.Status = models.StatusFail
		c.Message = "Page has no H1 heading"
		c.Recommendation = "Add exactly one H1 heading describing the page"
	default:
		c.Status = models.StatusFail
		c.Message = fmt.Sprintf("Page has %d H1 headings", h.H1)
		c.Recommendation = "Use exactly one H1 heading per page"
	}
	return c
}

func keywordPlacementCheck(p *Page) models.Check {
	var titleWords []string
	for _, w := range tokenize(p.Title()) {
		if utf8.RuneCountInString(w) > 3 {
			titleWords = append(titleWords, w)
		}
	}
	h1Words := tokenize(p.Doc.Find("h1").First().Text())

	c := models.Check{
		ID:     "keyword-placement",
		Name:   "Keyword Consistency",
		Weight: 8,
	}

	if len(titleWords) == 0 || len(h1Words) == 0 {
		c.Status, c.Score = models.StatusFail, 0
		c.Message = "Cannot compare title and H1 keywords"
		c.Recommendation = "Add a title and an H1 that share the page's main keyword"
		return c
	}

	var matched []string
	for _, tw := range titleWords {
		for _, hw := range h1Words {
			if wordsMatch(tw, hw) {
				matched = append(matched, tw)
				break
			}
		}
	}

	c.Score = len(matched) * 100 / len(titleWords)
	c.Value = map[string]any{"matched": matched, "titleWords": len(titleWords), "consistency": c.Score}
	if c.Score >= 50 {
		c.Status = models.StatusPass
		c.Message = fmt.Sprintf("Title and H1 share %d%% of keywords", c.Score)
	} else {
		c.Status = models.StatusWarning
		c.Message = fmt.Sprintf("Only %d%% of title keywords appear in the H1", c.Score)
		c.Recommendation = "Use the same primary keyword in the title and the H1"
	}
	return c
}

func stemWord(w string) string {
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(w, suffix) && len(w) > len(suffix)+3 {
			return strings.TrimSuffix(w, suffix)
		}
	}
	return w
}

func wordsMatch(a, b string) bool {
	if a == b || stemWord(a) == stemWord(b) {
		return true
	}
	if len(a) > 4 && len(b) > 4 {
		return strings.Contains(a, b) || strings.Contains(b, a)
	}
	return false
}

func urlOptimizationCheck(p *Page) models.Check {
	path := p.Path()
	c := models.Check{
		ID:     "url-optimization",
		Name:   "URL Structure",
		Weight: 6,
		Score:  100,
	}

	var issues []string
	if strings.Contains(path, "_") {
		c.Score -= 15
		issues = append(issues, "underscores")
	}
	if strings.IndexFunc(path, unicode.IsUpper) >= 0 {
		c.Score -= 10
		issues = append(issues, "uppercase letters")
	}
	c.Value = map[string]any{"path": path, "issues": issues}

	if len(issues) == 0 {
		c.Status = models.StatusPass
		c.Message = "URL is clean and readable"
		return c
	}
	c.Status = models.StatusWarning
	c.Message = "URL contains " + strings.Join(issues, " and ")
	c.Recommendation = "Use lowercase, hyphen-separated URLs"
	return c
}

func internalLinkingCheck(p *Page) models.Check {
	internal, _, _ := p.LinkCounts()
	th := Thresholds
	c := models.Check{
		ID:     "internal-linking",
		Name:   "Internal Linking",
		Weight: 8,
		Value:  map[string]any{"count": internal},
	}

	switch {
	case internal >= th.InternalLinksGood:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%d internal links found", internal)
	case internal >= th.InternalLinksOK:
		c.Status, c.Score = models.StatusPass, 80
		c.Message = fmt.Sprintf("%d internal links found", internal)
	case internal > 0:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("Only %d internal links found", internal)
		c.Recommendation = "Link to related pages on your site to spread authority"
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = "No internal links found"
		c.Recommendation = "Add internal links to related pages on your site"
	}
	return c
}

func imageAltCheck(p *Page) models.Check {
	images := p.Doc.Find("img")
	total := images.Length()
	withAlt := images.FilterFunction(func(_ int, s *goquery.Selection) bool {
		alt, ok := s.Attr("alt")
		return ok && strings.TrimSpace(alt) != ""
	}).Length()

	c := models.Check{
		ID:     "image-alt-tags",
		Name:   "Image Alt Text",
		Weight: 8,
		Score:  percent(withAlt, total),
		Value:  map[string]any{"images": total, "withAlt": withAlt},
	}

	switch {
	case total == 0:
		c.Status = models.StatusPass
		c.Message = "No images on the page"
	case c.Score >= Thresholds.ImageAltPassPercent:
		c.Status = models.StatusPass
		c.Message = fmt.Sprintf("%d%% of images have alt text", c.Score)
	case c.Score >= 50:
		c.Status = models.StatusWarning
		c.Message = fmt.Sprintf("%d of %d images lack alt text", total-withAlt, total)
		c.Recommendation = "Add descriptive alt text to every meaningful image"
	default:
		c.Status = models.StatusFail
		c.Message = fmt.Sprintf("%d of %d images lack alt text", total-withAlt, total)
		c.Recommendation = "Add descriptive alt text to every meaningful image"
	}
	return c
}

func thinContentCheck(p *Page) models.Check {
	words := 0
	for _, w := range p.MainWords() {
		if utf8.RuneCountInString(w) > 2 {
			words++
		}
	}

	th := Thresholds
	c := models.Check{
		ID:     "thin-content",
		Name:   "Content Depth",
		Weight: 8,
		Value:  map[string]any{"words": words},
	}

	switch {
	case words >= th.ThinContentWords:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("Page has %d words of main content", words)
	case words >= th.ShortContentWords:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("Page has only %d words of main content", words)
		c.Recommendation = fmt.Sprintf("Expand the main content to at least %d words", th.ThinContentWords)
	default:
		c.Status, c.Score = models.StatusFail, 10
		c.Message = fmt.Sprintf("Thin content: %d words of main content", words)
		c.Recommendation = fmt.Sprintf("Expand the main content to at least %d words", th.ThinContentWords)
	}
	return c
}

func canonicalURLCheck(p *Page) models.Check {
	href, ok := p.LinkRel("canonical")
	c := models.Check{
		ID:     "canonical-url",
		Name:   "Canonical URL",
		Weight: 6,
		Value:  map[string]any{"canonical": evidence(href)},
	}
	if ok && href != "" {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Canonical URL is set"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 50
	c.Message = "No canonical URL specified"
	c.Recommendation = "Add a rel=\"canonical\" link to prevent duplicate content"
	return c
}
