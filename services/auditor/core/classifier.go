package core

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/RuvinSL/seo-auditor/pkg/errs"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

type pathRule struct {
	pageType models.PageType
	pattern  *regexp.Regexp
}

// Checked in order; first match wins. Blog paths are handled separately.
var pathRules = []pathRule{
	{models.PageTypeContact, regexp.MustCompile(`/(contact|kontakt|contacto|contato)`)},
	{models.PageTypeAbout, regexp.MustCompile(`/(about|who-we-are|our-story|team)`)},
	{models.PageTypeLegal, regexp.MustCompile(`/(privacy|terms|disclaimer|cookie-policy|legal|imprint)`)},
	{models.PageTypeCategory, regexp.MustCompile(`/(category|categories|collection)`)},
	{models.PageTypeTag, regexp.MustCompile(`/(tag|tags|topic|topics)(/|$)`)},
	{models.PageTypeArchive, regexp.MustCompile(`/(archive|archives|date|year|month)(/|$)`)},
	{models.PageTypeProduct, regexp.MustCompile(`/(products?|shop|store|item|buy)(/|$|-)`)},
	{models.PageTypeService, regexp.MustCompile(`/(services?|solutions?|offerings?)(/|$|-)`)},
}

var (
	blogPattern      = regexp.MustCompile(`/(blog|news|articles?|posts?|journal|insights)(/|$|-)`)
	blogIndexPattern = regexp.MustCompile(`^/(blog|news|articles?|posts?|journal|insights)/?(page/\d+/?)?$`)
)

// Classify assigns a page type from crawl groups first, then URL path patterns.
// It is a pure function of its inputs.
func Classify(rawURL string, hints *models.CrawlHints) models.PageType {
	path := lowerPath(rawURL)

	if hints != nil && hints.URLGroups != nil {
		if t, ok := classifyFromGroups(rawURL, path, hints.URLGroups); ok {
			return t
		}
	}

	if path == "" || path == "/" {
		return models.PageTypeHome
	}

	for _, rule := range pathRules {
		if rule.pattern.MatchString(path) {
			return rule.pageType
		}
	}

	if blogPattern.MatchString(path) {
		if blogIndexPattern.MatchString(path) {
			return models.PageTypeArchive
		}
		return models.PageTypeBlog
	}

	return models.PageTypeOther
}

func classifyFromGroups(rawURL, path string, groups *models.URLGroups) (models.PageType, bool) {
	key := URLKey(rawURL)
	in := func(list []string) bool {
		for _, u := range list {
			if URLKey(u) == key {
				return true
			}
		}
		return false
	}

	switch {
	case in(groups.Core):
		switch {
		case path == "" || path == "/":
			return models.PageTypeHome, true
		case strings.Contains(path, "contact"):
			return models.PageTypeContact, true
		case strings.Contains(path, "about"):
			return models.PageTypeAbout, true
		}
		// other core pages fall through to path matching
	case in(groups.Blog):
		return models.PageTypeBlog, true
	case in(groups.Product):
		return models.PageTypeProduct, true
	case in(groups.Category):
		return models.PageTypeCategory, true
	}
	return "", false
}

func lowerPath(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Path)
}

// NormalizeURL lower-cases scheme and host, drops the fragment and strips a
// trailing slash from non-root paths.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", errs.New(errs.InvalidInput, "invalid URL "+rawURL, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errs.Invalid("URL must use http or https: %q", rawURL)
	}
	if u.Host == "" {
		return "", errs.Invalid("URL has no host: %q", rawURL)
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	if len(u.Path) > 1 {
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// URLKey is the case- and trailing-slash-insensitive identity of a URL
func URLKey(rawURL string) string {
	key := strings.ToLower(strings.TrimSpace(rawURL))
	if i := strings.IndexByte(key, '#'); i >= 0 {
		key = key[:i]
	}
	return strings.TrimRight(key, "/")
}

// NormalizeURLs normalizes and de-duplicates in first-seen order
func NormalizeURLs(urls []string) ([]string, error) {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		normalized, err := NormalizeURL(raw)
		if err != nil {
			return nil, err
		}
		key := URLKey(normalized)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, normalized)
	}
	return out, nil
}

// ClassifyAll classifies every URL, taking titles from the crawl hints
func ClassifyAll(urls []string, hints *models.CrawlHints) []models.PageClassification {
	titles := make(map[string]string)
	if hints != nil {
		for _, p := range hints.Pages {
			if p.Title != "" {
				titles[URLKey(p.URL)] = p.Title
			}
		}
	}

	out := make([]models.PageClassification, 0, len(urls))
	for _, u := range urls {
		out = append(out, models.PageClassification{
			URL:   u,
			Type:  Classify(u, hints),
			Title: titles[URLKey(u)],
		})
	}
	return out
}
