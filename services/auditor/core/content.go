package core

import (
	"fmt"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

// contentChecks adjusts to the page type. Listing pages are judged on links only.
func contentChecks(p *Page) []models.Check {
	words := len(p.MainWords())

	var checks []models.Check
	if !p.Type.IsListing() {
		checks = append(checks, wordCountCheck(words), contentHeadingCheck(p))
	}
	return append(checks, contextualLinksCheck(p, words))
}

func wordCountCheck(words int) models.Check {
	th := Thresholds
	c := models.Check{
		ID:     "word-count",
		Name:   "Word Count",
		Weight: 15,
		Value:  map[string]any{"words": words},
	}

	switch {
	case words >= th.LongFormWords:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("Long-form content (%d words)", words)
	case words >= th.ThinContentWords:
		c.Status, c.Score = models.StatusPass, 80
		c.Message = fmt.Sprintf("Good content length (%d words)", words)
	case words >= th.ShortContentWords:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("Short content (%d words)", words)
		c.Recommendation = fmt.Sprintf("Expand the content to at least %d words", th.ThinContentWords)
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = fmt.Sprintf("Very little content (%d words)", words)
		c.Recommendation = fmt.Sprintf("Write at least %d words of useful content", th.ThinContentWords)
	}
	return c
}

// contentHeadingCheck looks at the outline rather than raw counts.
// About and contact pages are short by nature, so a missing H2 is only a warning there.
func contentHeadingCheck(p *Page) models.Check {
	levels := p.HeadingLevels()
	h := p.HeadingCounts()

	skipped := 0
	for i := 1; i < len(levels); i++ {
		if levels[i] > levels[i-1]+1 {
			skipped++
		}
	}

	c := models.Check{
		ID:     "heading-structure",
		Name:   "Content Outline",
		Weight: 10,
		Value:  map[string]any{"headings": len(levels), "h1": h.H1, "h2": h.H2, "skippedLevels": skipped},
	}

	lenient := p.Type == models.PageTypeAbout || p.Type == models.PageTypeContact
	switch {
	case h.H1 == 0:
		c.Status, c.Score = models.StatusFail, 0
		c.Message = "Content has no H1 heading"
		c.Recommendation = "Start the content with a single H1 heading"
	case h.H2 == 0 && lenient:
		c.Status, c.Score = models.StatusWarning, 70
		c.Message = "Content has no H2 subheadings"
		c.Recommendation = "Add H2 subheadings if the page covers more than one topic"
	case h.H2 == 0:
		c.Status, c.Score = models.StatusFail, 30
		c.Message = "Content has no H2 subheadings"
		c.Recommendation = "Organise the content into sections with H2 subheadings"
	case skipped > 0:
		c.Status, c.Score = models.StatusWarning, 70
		c.Message = fmt.Sprintf("Heading outline skips a level %d time(s)", skipped)
		c.Recommendation = "Nest headings in order (H1, then H2, then H3) without skipping levels"
	default:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Content is organised with a clear heading outline"
	}
	return c
}

func contextualLinksCheck(p *Page, words int) models.Check {
	internal, _, _ := p.LinkCounts()
	th := Thresholds
	c := models.Check{
		ID:     "contextual-internal-links",
		Name:   "Contextual Internal Links",
		Weight: 10,
		Value:  map[string]any{"internalLinks": internal, "words": words},
	}

	terminal := p.Type == models.PageTypeContact || p.Type == models.PageTypeLegal || p.Type == models.PageTypeHome
	if words <= th.ContextualMinWords || terminal {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%d internal links; not required for this page", internal)
		return c
	}

	switch {
	case internal >= th.InternalLinksOK:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%d internal links support the content", internal)
	case internal >= th.InternalLinksLow:
		c.Status, c.Score = models.StatusWarning, 60
		c.Message = fmt.Sprintf("Only %d internal links in %d words", internal, words)
		c.Recommendation = "Link to related articles or services from within the content"
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = fmt.Sprintf("Long content with %d internal links", internal)
		c.Recommendation = "Add contextual links to related pages on your site"
	}
	return c
}
