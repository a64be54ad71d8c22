package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

var unlabelledInputTypes = map[string]bool{
	"hidden": true, "submit": true, "button": true, "image": true, "reset": true,
}

func usabilityChecks(p *Page) []models.Check {
	return []models.Check{
		mobileViewportCheck(p),
		faviconCheck(p),
		formLabelsCheck(p),
		mainLandmarkCheck(p),
	}
}

func isMobileViewport(p *Page) bool {
	return strings.Contains(strings.ReplaceAll(strings.ToLower(p.Meta("viewport")), " ", ""), "width=device-width")
}

func mobileViewportCheck(p *Page) models.Check {
	c := models.Check{
		ID:     "mobile-friendly",
		Name:   "Mobile Friendly",
		Weight: 20,
	}
	if isMobileViewport(p) {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Viewport adapts to the device width"
		return c
	}
	c.Status, c.Score = models.StatusFail, 20
	c.Message = "Viewport is not set to the device width"
	c.Recommendation = `Use <meta name="viewport" content="width=device-width, initial-scale=1">`
	return c
}

func faviconCheck(p *Page) models.Check {
	_, icon := p.LinkRel("icon")
	c := models.Check{ID: "favicon", Name: "Favicon", Weight: 5}
	if icon {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Favicon is declared"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 60
	c.Message = "No favicon declared"
	c.Recommendation = `Add <link rel="icon" href="/favicon.ico">`
	return c
}

func formLabelsCheck(p *Page) models.Check {
	inputs := p.Doc.Find("input, select, textarea").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !unlabelledInputTypes[strings.ToLower(s.AttrOr("type", ""))]
	})
	labelled := inputs.FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, aria := s.Attr("aria-label")
		_, ariaBy := s.Attr("aria-labelledby")
		return aria || ariaBy
	}).Length()
	labels := p.Doc.Find("label").Length() + labelled
	total := inputs.Length()

	c := models.Check{
		ID:     "form-labels",
		Name:   "Form Labels",
		Weight: 8,
		Value:  map[string]any{"inputs": total, "labels": labels},
	}
	if total == 0 || float64(labels) >= math.Ceil(float64(total)*Thresholds.FormLabelRatio) {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%d of %d form fields are labelled", min(labels, total), total)
		return c
	}
	c.Status, c.Score = models.StatusWarning, 50
	c.Message = fmt.Sprintf("Only %d of %d form fields are labelled", labels, total)
	c.Recommendation = "Give every form field a <label> or aria-label"
	return c
}

func mainLandmarkCheck(p *Page) models.Check {
	c := models.Check{ID: "main-landmark", Name: "Main Landmark", Weight: 5}
	if p.Doc.Find(`main, [role="main"]`).Length() > 0 {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Main content landmark found"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 60
	c.Message = "No <main> landmark"
	c.Recommendation = "Wrap the primary content in a <main> element"
	return c
}
