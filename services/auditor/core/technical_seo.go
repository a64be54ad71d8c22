package core

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

func technicalSEOChecks(p *Page) []models.Check {
	return []models.Check{
		indexingCheck(p),
		resourceCountCheck(p),
		mobileFriendlinessCheck(p),
		httpsSecurityCheck(p),
		brokenLinksCheck(p),
		urlStructureCheck(p),
		canonicalTagCheck(p),
		redirectCheck(p),
		webVitalsIndicatorsCheck(p),
	}
}

// indexingCheck fails hard on noindex from either the meta tag or the header.
func indexingCheck(p *Page) models.Check {
	robots := strings.ToLower(p.Meta("robots"))
	header := strings.ToLower(p.Header("x-robots-tag"))
	c := models.Check{
		ID:     "indexing-status",
		Name:   "Indexability",
		Weight: 15,
		Value:  map[string]any{"robots": evidence(robots), "xRobotsTag": evidence(header)},
	}
	if strings.Contains(robots, "noindex") || strings.Contains(header, "noindex") {
		c.Status, c.Score = models.StatusFail, 0
		c.Message = "Page is blocked from indexing (noindex)"
		c.Recommendation = "Remove the noindex directive if this page should appear in search"
		return c
	}
	c.Status, c.Score = models.StatusPass, 100
	c.Message = "Page can be indexed"
	return c
}

func resourceCountCheck(p *Page) models.Check {
	scripts := p.Doc.Find("script[src]").Length()
	styles := p.Doc.Find(`link[rel="stylesheet"]`).Length()
	total := scripts + styles
	th := Thresholds
	c := models.Check{
		ID:     "page-speed-indicators",
		Name:   "Render Resources",
		Weight: 12,
		Value:  map[string]any{"scripts": scripts, "stylesheets": styles},
	}
	switch {
	case total <= th.ResourceCountGood:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%d external scripts and stylesheets", total)
	case total <= th.ResourceCountOK:
		c.Status, c.Score = models.StatusWarning, 70
		c.Message = fmt.Sprintf("%d external scripts and stylesheets", total)
		c.Recommendation = "Bundle or defer scripts and stylesheets to speed up rendering"
	default:
		c.Status, c.Score = models.StatusFail, 40
		c.Message = fmt.Sprintf("Too many render resources (%d)", total)
		c.Recommendation = "Cut the number of scripts and stylesheets loaded by the page"
	}
	return c
}

func mobileFriendlinessCheck(p *Page) models.Check {
	c := models.Check{ID: "mobile-friendliness", Name: "Mobile Viewport", Weight: 12}
	if isMobileViewport(p) {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Responsive viewport is configured"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 50
	c.Message = "No responsive viewport"
	c.Recommendation = "Configure a responsive viewport for mobile-first indexing"
	return c
}

func httpsSecurityCheck(p *Page) models.Check {
	c := models.Check{
		ID:     "https-security",
		Name:   "HTTPS Security",
		Weight: 12,
		Value:  map[string]any{"https": p.IsHTTPS},
	}
	if p.IsHTTPS {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Page is served securely"
		return c
	}
	c.Status, c.Score = models.StatusFail, 0
	c.Message = "Page is served over plain HTTP"
	c.Recommendation = "Install a TLS certificate and redirect HTTP to HTTPS"
	return c
}

func brokenLinksCheck(p *Page) models.Check {
	_, _, empty := p.LinkCounts()
	c := models.Check{
		ID:     "broken-links",
		Name:   "Empty Link Targets",
		Weight: 10,
		Value:  map[string]any{"count": empty},
	}
	if empty == 0 {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "No links without a destination"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 70
	c.Message = fmt.Sprintf("%d links have no destination", empty)
	c.Recommendation = "Fix or remove links without a real destination"
	return c
}

func urlStructureCheck(p *Page) models.Check {
	path := p.Path()
	var issues []string
	if strings.Contains(path, "_") {
		issues = append(issues, "underscores")
	}
	if strings.IndexFunc(path, unicode.IsUpper) >= 0 {
		issues = append(issues, "uppercase")
	}
	if len(path) > 100 {
		issues = append(issues, "long path")
	}
	if strings.Contains(p.URL, "?") {
		issues = append(issues, "query parameters")
	}

	c := models.Check{
		ID:     "url-structure",
		Name:   "URL Structure",
		Weight: 8,
		Value:  map[string]any{"path": path, "issues": issues},
	}
	if len(issues) == 0 {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "URL structure is clean"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 70
	c.Message = "URL has " + strings.Join(issues, ", ")
	c.Recommendation = "Keep URLs short, lowercase and hyphenated"
	return c
}

func canonicalTagCheck(p *Page) models.Check {
	href, ok := p.LinkRel("canonical")
	c := models.Check{ID: "canonical-tag", Name: "Canonical Tag", Weight: 10}
	if ok && href != "" {
		c.Status, c.Score = models.StatusPass, 100
		c.Value = map[string]any{"canonical": evidence(href)}
		c.Message = "Canonical tag is present"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 40
	c.Message = "No canonical tag"
	c.Recommendation = "Add a canonical tag to consolidate duplicate URLs"
	return c
}

func redirectCheck(p *Page) models.Check {
	refresh := p.Doc.Find("meta[http-equiv]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.EqualFold(s.AttrOr("http-equiv", ""), "refresh")
	}).Length() > 0

	c := models.Check{ID: "redirect-issues", Name: "Redirects", Weight: 8}
	if !refresh {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "No client-side redirects"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 60
	c.Message = "Page uses a meta refresh redirect"
	c.Recommendation = "Replace the meta refresh with a server-side 301 redirect"
	return c
}

// webVitalsIndicatorsCheck scores markup that tends to help Core Web Vitals
func webVitalsIndicatorsCheck(p *Page) models.Check {
	lazy := p.Doc.Find(`img[loading="lazy"], iframe[loading="lazy"]`).Length()
	async := p.Doc.Find("script[async], script[defer]").Length()
	preload := p.Doc.Find(`link[rel="preload"], link[rel="preconnect"]`).Length()

	c := models.Check{
		ID:     "core-web-vitals-indicators",
		Name:   "Core Web Vitals Indicators",
		Weight: 10,
		Value:  map[string]any{"lazyLoaded": lazy, "asyncScripts": async, "preloadHints": preload},
	}
	if lazy > 0 {
		c.Score += 40
	}
	if async > 0 {
		c.Score += 40
	}
	if preload > 0 {
		c.Score += 20
	}

	switch {
	case c.Score >= 80:
		c.Status = models.StatusPass
		c.Message = "Page uses lazy loading and non-blocking scripts"
	case c.Score >= 40:
		c.Status = models.StatusWarning
		c.Message = "Page uses some loading optimisations"
		c.Recommendation = "Lazy-load offscreen images and add async or defer to scripts"
	default:
		c.Status = models.StatusFail
		c.Message = "No loading optimisations found"
		c.Recommendation = "Lazy-load offscreen images and add async or defer to scripts"
	}
	return c
}
