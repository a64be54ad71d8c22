package core

import (
	"sort"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

// Selection is the per-category page choice of one audit run
type Selection struct {
	Mapping models.AuditMapping
	// Fallback marks categories that had no suitable page and were
	// assigned the home (or first) page regardless of its type.
	Fallback map[models.Category]bool
}

// Runs reports whether category should be analyzed on a page of the given type and URL
func (s Selection) Runs(category models.Category, pc models.PageClassification) bool {
	if !Applies(pc.Type, category) && !s.Fallback[category] {
		return false
	}
	for _, u := range s.Mapping[category] {
		if u == pc.URL {
			return true
		}
	}
	return false
}

// URLs returns every selected URL once, in classification order
func (s Selection) URLs(pages []models.PageClassification) []string {
	selected := make(map[string]bool)
	for _, urls := range s.Mapping {
		for _, u := range urls {
			selected[u] = true
		}
	}
	var out []string
	for _, pc := range pages {
		if selected[pc.URL] {
			out = append(out, pc.URL)
			delete(selected, pc.URL)
		}
	}
	return out
}

type picker struct {
	category models.Category
	types    map[string]models.PageType
	limit    int
	urls     []string
	seen     map[string]bool
}

func (p *picker) add(urls ...string) {
	for _, u := range urls {
		if u == "" || p.seen[u] || p.full() {
			continue
		}
		if !Applies(p.types[u], p.category) {
			continue
		}
		p.seen[u] = true
		p.urls = append(p.urls, u)
	}
}

func (p *picker) full() bool {
	return p.limit > 0 && len(p.urls) >= p.limit
}

// SelectPages builds the audit mapping before any page is fetched
func SelectPages(pages []models.PageClassification, hints *models.CrawlHints, policy SelectionPolicy) Selection {
	types := make(map[string]models.PageType, len(pages))
	byType := make(map[models.PageType][]string)
	var all []string
	for _, pc := range pages {
		types[pc.URL] = pc.Type
		byType[pc.Type] = append(byType[pc.Type], pc.URL)
		all = append(all, pc.URL)
	}

	first := func(t models.PageType) string {
		if list := byType[t]; len(list) > 0 {
			return list[0]
		}
		return ""
	}
	home := first(models.PageTypeHome)

	newPicker := func(c models.Category, limit int) *picker {
		return &picker{category: c, types: types, limit: limit, seen: make(map[string]bool)}
	}

	sel := Selection{
		Mapping:  make(models.AuditMapping, len(models.AllCategories)),
		Fallback: make(map[models.Category]bool),
	}

	for _, c := range models.AllCategories {
		var p *picker

		switch c {
		case models.CategoryPerformance:
			p = newPicker(c, 0)
			p.add(home)
			p.add(firstNonEmpty(first(models.PageTypeProduct), first(models.PageTypeService), first(models.PageTypeBlog)))

		case models.CategoryLocalSEO:
			p = newPicker(c, 0)
			p.add(home)
			p.add(byType[models.PageTypeContact]...)

		case models.CategorySEO:
			p = newPicker(c, policy.SEOMaxPages)
			p.add(byType[models.PageTypeService]...)
			p.add(byType[models.PageTypeProduct]...)
			p.add(byType[models.PageTypeBlog]...)
			if len(p.urls) == 0 {
				p.add(home)
			}
			for _, u := range all {
				if len(p.urls) >= policy.SEOMinPages {
					break
				}
				switch types[u] {
				case models.PageTypeCategory, models.PageTypeTag, models.PageTypeArchive,
					models.PageTypeContact, models.PageTypeLegal:
					continue
				}
				p.add(u)
			}

		case models.CategoryContent:
			p = newPicker(c, policy.ContentMaxPages)
			p.add(byType[models.PageTypeBlog]...)
			p.add(byType[models.PageTypeService]...)
			if len(p.urls) == 0 {
				p.add(home)
			}

		case models.CategoryEEAT:
			p = newPicker(c, policy.EEATMaxPages)
			p.add(byType[models.PageTypeAbout]...)
			p.add(byType[models.PageTypeBlog]...)

		case models.CategoryTechnology, models.CategoryUsability:
			p = newPicker(c, 0)
			p.add(home, first(models.PageTypeContact))
			for _, u := range all {
				if len(p.urls) >= 2 {
					break
				}
				p.add(u)
			}

		case models.CategorySocial:
			p = newPicker(c, 0)
			p.add(home)
			blogs := byType[models.PageTypeBlog]
			if len(blogs) > policy.SocialBlogPages {
				blogs = blogs[:policy.SocialBlogPages]
			}
			p.add(blogs...)

		case models.CategoryLinks:
			p = newPicker(c, policy.LinksMaxPages)
			p.add(topLinked(hints, types)...)
			p.add(all...)

		case models.CategoryTechnicalSEO:
			p = newPicker(c, 0)
			p.add(home, first(models.PageTypeProduct), first(models.PageTypeBlog))
		}

		urls := p.urls
		if len(urls) == 0 && len(all) > 0 {
			urls = []string{firstNonEmpty(home, all[0])}
			sel.Fallback[c] = true
		}
		sel.Mapping[c] = urls
	}

	return sel
}

// topLinked returns hinted URLs that are being audited, most linked first
func topLinked(hints *models.CrawlHints, types map[string]models.PageType) []string {
	if hints == nil || len(hints.TopLinkedPages) == 0 {
		return nil
	}

	byKey := make(map[string]string, len(types))
	for u := range types {
		byKey[URLKey(u)] = u
	}

	ranked := make([]models.LinkedPage, 0, len(hints.TopLinkedPages))
	for _, lp := range hints.TopLinkedPages {
		if u, ok := byKey[URLKey(lp.URL)]; ok {
			ranked = append(ranked, models.LinkedPage{URL: u, LinkCount: lp.LinkCount})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LinkCount > ranked[j].LinkCount
	})

	out := make([]string, len(ranked))
	for i, lp := range ranked {
		out[i] = lp.URL
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
