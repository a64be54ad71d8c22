package core

import (
	"fmt"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

func linkChecks(p *Page) []models.Check {
	internal, external, empty := p.LinkCounts()
	return []models.Check{
		internalLinksCheck(internal),
		externalLinksCheck(external),
		emptyLinksCheck(empty),
	}
}

func internalLinksCheck(n int) models.Check {
	th := Thresholds
	c := models.Check{
		ID:     "internal-links",
		Name:   "Internal Links",
		Weight: 15,
		Value:  map[string]any{"count": n},
	}
	switch {
	case n >= th.InternalLinksGood:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%d internal links", n)
	case n >= th.InternalLinksOK:
		c.Status, c.Score = models.StatusPass, 80
		c.Message = fmt.Sprintf("%d internal links", n)
	case n >= th.InternalLinksLow:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("Only %d internal links", n)
		c.Recommendation = "Add more links to your key pages"
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = fmt.Sprintf("Only %d internal links", n)
		c.Recommendation = "Add navigation and in-content links to other pages on your site"
	}
	return c
}

func externalLinksCheck(n int) models.Check {
	c := models.Check{
		ID:     "external-links",
		Name:   "External Links",
		Weight: 10,
		Value:  map[string]any{"count": n},
	}
	switch {
	case n == 0:
		c.Status, c.Score = models.StatusInfo, 60
		c.Message = "No external links"
		c.Recommendation = "Cite authoritative external sources where relevant"
	case n <= Thresholds.ExternalLinksMax:
		c.Status, c.Score = models.StatusPass, 80
		c.Message = fmt.Sprintf("%d external links", n)
	default:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("%d external links", n)
		c.Recommendation = "Reduce the number of outbound links"
	}
	return c
}

func emptyLinksCheck(n int) models.Check {
	c := models.Check{
		ID:     "empty-links",
		Name:   "Empty Links",
		Weight: 10,
		Score:  clampScore(100 - 20*n),
		Value:  map[string]any{"count": n},
	}
	if n == 0 {
		c.Status = models.StatusPass
		c.Message = "No empty links"
		return c
	}
	c.Status = models.StatusWarning
	c.Message = fmt.Sprintf(`%d links point to "#" or nowhere`, n)
	c.Recommendation = "Give every link a real destination or use a button"
	return c
}
