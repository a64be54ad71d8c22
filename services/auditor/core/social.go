package core

import (
	"fmt"
	"strings"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

var (
	openGraphTags = []string{"og:title", "og:description", "og:image"}

	socialPlatforms = []struct {
		name    string
		domains []string
	}{
		{"facebook", []string{"facebook.com", "fb.com"}},
		{"twitter", []string{"twitter.com", "x.com"}},
		{"linkedin", []string{"linkedin.com"}},
		{"instagram", []string{"instagram.com"}},
		{"youtube", []string{"youtube.com", "youtu.be"}},
		{"tiktok", []string{"tiktok.com"}},
		{"pinterest", []string{"pinterest.com"}},
	}
)

func socialChecks(p *Page) []models.Check {
	return []models.Check{
		openGraphCheck(p),
		twitterCardCheck(p),
		socialLinksCheck(p),
	}
}

func openGraphCheck(p *Page) models.Check {
	var present, missing []string
	for _, tag := range openGraphTags {
		if p.Meta(tag) != "" {
			present = append(present, tag)
		} else {
			missing = append(missing, tag)
		}
	}

	c := models.Check{
		ID:     "open-graph",
		Name:   "Open Graph Tags",
		Weight: 20,
		Score:  len(present) * 100 / len(openGraphTags),
		Value:  map[string]any{"present": present, "missing": missing},
	}
	switch {
	case len(missing) == 0:
		c.Status = models.StatusPass
		c.Message = "Open Graph title, description and image are set"
	case len(present) > 0:
		c.Status = models.StatusWarning
		c.Message = "Missing Open Graph tags: " + strings.Join(missing, ", ")
		c.Recommendation = "Add the missing Open Graph tags so shared links render a rich preview"
	default:
		c.Status = models.StatusFail
		c.Message = "No Open Graph tags found"
		c.Recommendation = "Add og:title, og:description and og:image meta tags"
	}
	return c
}

func twitterCardCheck(p *Page) models.Check {
	card := p.Meta("twitter:card")
	titled := p.Meta("twitter:title") != "" || p.Meta("og:title") != ""
	c := models.Check{
		ID:     "twitter-card",
		Name:   "Twitter Card",
		Weight: 15,
		Value:  map[string]any{"card": evidence(card)},
	}
	switch {
	case card != "" && titled:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("Twitter Card is set (%s)", evidence(card))
	case card != "":
		c.Status, c.Score = models.StatusPass, 70
		c.Message = "Twitter Card is set without a title"
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = "No Twitter Card found"
		c.Recommendation = "Add a twitter:card meta tag, e.g. summary_large_image"
	}
	return c
}

func socialLinksCheck(p *Page) models.Check {
	found := make(map[string]bool)
	var platforms []string
	for _, l := range p.Links() {
		if !l.External {
			continue
		}
		href := strings.ToLower(l.Href)
		for _, sp := range socialPlatforms {
			if found[sp.name] {
				continue
			}
			for _, d := range sp.domains {
				if strings.Contains(href, "//"+d) || strings.Contains(href, "."+d) {
					found[sp.name] = true
					platforms = append(platforms, sp.name)
					break
				}
			}
		}
	}

	c := models.Check{
		ID:     "social-links",
		Name:   "Social Profile Links",
		Weight: 5,
		Value:  map[string]any{"platforms": platforms, "count": len(platforms)},
	}
	switch {
	case len(platforms) >= Thresholds.SocialPlatformsGood:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("Links to %d social platforms", len(platforms))
	case len(platforms) > 0:
		c.Status, c.Score = models.StatusWarning, 60
		c.Message = fmt.Sprintf("Links to %d social platform(s)", len(platforms))
		c.Recommendation = "Link to your profiles on the social platforms you use"
	default:
		c.Status, c.Score = models.StatusInfo, 50
		c.Message = "No social profile links found"
		c.Recommendation = "Link to your social media profiles from the page"
	}
	return c
}
