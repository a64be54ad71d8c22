package core

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

var (
	phonePattern   = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?\(?\d{2,4}\)?[\s.-]\d{3,4}[\s.-]\d{3,4}`)
	addressPattern = regexp.MustCompile(`\b\d{1,5}\s+(?:[a-z0-9.'-]+\s+){1,5}(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|way|court|ct|place|pl|square|sq)\b`)
	localTypes     = map[string]bool{
		"localbusiness": true, "organization": true, "corporation": true, "store": true,
		"restaurant": true, "dentist": true, "physician": true, "legalservice": true,
		"professionalservice": true, "medicalbusiness": true, "autorepair": true,
		"plumber": true, "electrician": true, "locksmith": true, "roofingcontractor": true,
		"generalcontractor": true, "hvacbusiness": true, "housepainter": true, "movingcompany": true,
		"attorney": true, "accountingservice": true, "realestateagent": true, "hairsalon": true,
		"hotel": true, "cafeorcoffeeshop": true, "bakery": true, "barorpub": true,
	}
)

func localSEOChecks(p *Page) []models.Check {
	schema := parseSchema(p.JSONLD())
	return []models.Check{
		phoneCheck(p),
		addressCheck(p, schema),
		localSchemaCheck(schema),
		mapEmbedCheck(p),
	}
}

func phoneCheck(p *Page) models.Check {
	c := models.Check{ID: "phone-number", Name: "Phone Number", Weight: 15}

	var telLinks []string
	for _, l := range p.Links() {
		if strings.HasPrefix(strings.ToLower(l.Href), "tel:") {
			telLinks = append(telLinks, evidence(strings.TrimPrefix(l.Href, "tel:")))
		}
	}
	if len(telLinks) > 0 {
		c.Status, c.Score = models.StatusPass, 100
		c.Value = map[string]any{"phones": telLinks, "clickToCall": true}
		c.Message = "Click-to-call phone number found"
		return c
	}

	if match := phonePattern.FindString(p.BodyText()); match != "" {
		c.Status, c.Score = models.StatusWarning, 80
		c.Value = map[string]any{"phones": []string{match}, "clickToCall": false}
		c.Message = "Phone number found but it is not a tel: link"
		c.Recommendation = "Wrap the phone number in a tel: link for mobile visitors"
		return c
	}

	c.Status, c.Score = models.StatusWarning, 30
	c.Message = "No phone number found"
	c.Recommendation = "Display a phone number as a clickable tel: link"
	return c
}

func addressCheck(p *Page, schema schemaInfo) models.Check {
	c := models.Check{ID: "address", Name: "Business Address", Weight: 15}

	source := ""
	switch {
	case schema.hasAddress:
		source = "schema"
	case p.Doc.Find(`[itemprop="streetAddress"], address`).Length() > 0:
		source = "markup"
	case addressPattern.MatchString(p.BodyText()):
		source = "text"
	}

	if source != "" {
		c.Status, c.Score = models.StatusPass, 100
		c.Value = map[string]any{"source": source}
		c.Message = "Business address found"
		return c
	}
	c.Status, c.Score = models.StatusWarning, 40
	c.Message = "No business address found"
	c.Recommendation = "Show your full street address, ideally in an <address> element"
	return c
}

func localSchemaCheck(schema schemaInfo) models.Check {
	c := models.Check{
		ID:     "local-schema",
		Name:   "LocalBusiness Schema",
		Weight: 20,
		Value:  map[string]any{"types": schema.types, "invalidBlocks": schema.invalid},
	}

	switch {
	case schema.hasLocal:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "LocalBusiness or Organization schema found"
	case schema.invalid > 0 && schema.mentionsLocal:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = "Business schema found but the JSON-LD is invalid"
		c.Recommendation = "Fix the JSON-LD syntax so search engines can read your business data"
	default:
		c.Status, c.Score = models.StatusFail, 0
		c.Message = "No LocalBusiness schema found"
		c.Recommendation = "Add LocalBusiness JSON-LD with name, address, phone and opening hours"
	}
	return c
}

func mapEmbedCheck(p *Page) models.Check {
	c := models.Check{ID: "google-map", Name: "Map Embed", Weight: 10}

	embedded := p.Doc.Find("iframe[src]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		src := strings.ToLower(s.AttrOr("src", ""))
		return strings.Contains(src, "google.com/maps") || strings.Contains(src, "maps.google") ||
			strings.Contains(src, "maps.googleapis.com")
	}).Length() > 0

	if embedded {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Google Map embed found"
		return c
	}

	marker := p.Doc.Find(`[id*="map"], [class*="map"]`).Length() > 0
	for _, l := range p.Links() {
		href := strings.ToLower(l.Href)
		if strings.Contains(href, "maps.google") || strings.Contains(href, "google.com/maps") || strings.Contains(href, "goo.gl/maps") {
			marker = true
			break
		}
	}
	if marker {
		c.Status, c.Score = models.StatusWarning, 70
		c.Message = "Map reference found but no embedded Google Map"
		c.Recommendation = "Embed a Google Map of your location"
		return c
	}

	c.Status, c.Score = models.StatusInfo, 50
	c.Message = "No map found"
	c.Recommendation = "Embed a Google Map to help visitors find you"
	return c
}

type schemaInfo struct {
	types         []string
	invalid       int
	hasLocal      bool
	hasAddress    bool
	mentionsLocal bool
}

// parseSchema reads JSON-LD blocks. Invalid blocks are counted, never fatal.
func parseSchema(blocks []string) schemaInfo {
	var info schemaInfo
	for _, block := range blocks {
		var doc any
		if err := json.Unmarshal([]byte(block), &doc); err != nil {
			info.invalid++
			lower := strings.ToLower(block)
			if strings.Contains(lower, "localbusiness") || strings.Contains(lower, "organization") {
				info.mentionsLocal = true
			}
			continue
		}
		info.walk(doc)
	}
	return info
}

func (s *schemaInfo) walk(node any) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			s.walk(item)
		}
	case map[string]any:
		for _, t := range schemaTypes(v["@type"]) {
			s.types = append(s.types, t)
			if isLocalType(t) {
				s.hasLocal = true
				if _, ok := v["address"]; ok {
					s.hasAddress = true
				}
			}
		}
		if graph, ok := v["@graph"]; ok {
			s.walk(graph)
		}
	}
}

func schemaTypes(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func isLocalType(t string) bool {
	lower := strings.ToLower(t)
	return localTypes[lower] || strings.HasSuffix(lower, "business")
}
