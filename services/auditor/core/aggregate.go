package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

type mergedCheck struct {
	rep     models.Check
	repURL  string
	status  models.CheckStatus
	score   int
	order   int
	sources []string
	seen    map[string]bool
}

// Aggregate merges the per-page results of one category.
//
// Checks are merged by id. The merged status is the worst status seen and the
// merged score is the lowest score seen; message, value and recommendation come
// from the worst page (highest severity, then lowest score, then smallest URL).
// Check order is the earliest position the id had on any page. The result does
// not depend on the order of results; only SourcePages keeps first-seen order.
//
// intended is the list of pages selected for the category. With no results the
// category scores 0 and reports intended as its SourcePages.
func Aggregate(category models.Category, intended []string, attempted bool, results []models.CategoryResult) models.CategoryResult {
	if len(results) == 0 {
		message := fmt.Sprintf("%s was not applicable to any audited page", category.DisplayName())
		if attempted {
			message = fmt.Sprintf("No pages could be analyzed for %s", category.DisplayName())
		}
		return models.CategoryResult{
			Category:    category,
			Score:       0,
			Grade:       Grade(0),
			Message:     message,
			Checks:      []models.Check{},
			SourcePages: append([]string(nil), intended...),
			Attempted:   attempted,
			PageCount:   0,
		}
	}

	var (
		total   int
		pages   []string
		seenURL = make(map[string]bool)
		merged  = make(map[string]*mergedCheck)
	)

	for _, r := range results {
		total += r.Score
		for _, u := range r.SourcePages {
			if !seenURL[u] {
				seenURL[u] = true
				pages = append(pages, u)
			}
		}

		src := ""
		if len(r.SourcePages) > 0 {
			src = r.SourcePages[0]
		}

		for i, c := range r.Checks {
			m, ok := merged[c.ID]
			if !ok {
				m = &mergedCheck{rep: c, repURL: src, status: c.Status, score: c.Score, order: i, seen: make(map[string]bool)}
				merged[c.ID] = m
			} else {
				m.absorb(c, i, src)
			}
			for _, u := range checkSources(c, src) {
				if !m.seen[u] {
					m.seen[u] = true
					m.sources = append(m.sources, u)
				}
			}
		}
	}

	list := make([]*mergedCheck, 0, len(merged))
	for _, m := range merged {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].order != list[j].order {
			return list[i].order < list[j].order
		}
		return list[i].rep.ID < list[j].rep.ID
	})

	checks := make([]models.Check, len(list))
	for i, m := range list {
		checks[i] = m.rep
		checks[i].Status = m.status
		checks[i].Score = m.score
		checks[i].SourcePages = m.sources
	}

	score := clampScore(int(math.Round(float64(total) / float64(len(results)))))
	return models.CategoryResult{
		Category:    category,
		Score:       score,
		Grade:       Grade(score),
		Message:     fmt.Sprintf("%s analysis across %d page(s)", category.DisplayName(), len(results)),
		Checks:      checks,
		SourcePages: pages,
		Attempted:   true,
		PageCount:   len(results),
	}
}

func (m *mergedCheck) absorb(c models.Check, order int, src string) {
	if order < m.order {
		m.order = order
	}

	if c.Status.Severity() > m.status.Severity() {
		m.status = c.Status
	}
	m.score = min(m.score, c.Score)

	if worse(c, src, m.rep, m.repURL) {
		m.rep = c
		m.repURL = src
	}
}

// worse orders candidate representatives: higher severity, then lower score, then smaller URL
func worse(a models.Check, aURL string, b models.Check, bURL string) bool {
	if a.Status.Severity() != b.Status.Severity() {
		return a.Status.Severity() > b.Status.Severity()
	}
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return aURL < bURL
}

func checkSources(c models.Check, fallback string) []string {
	if len(c.SourcePages) > 0 {
		return c.SourcePages
	}
	if fallback == "" {
		return nil
	}
	return []string{fallback}
}

// OverallScore is the weighted mean of the attempted categories.
// Categories that were never attempted count toward neither side.
func OverallScore(categories map[models.Category]models.CategoryResult, weights map[models.Category]int) int {
	var total, denom int
	for _, c := range models.AllCategories {
		r, ok := categories[c]
		if !ok || !r.Attempted {
			continue
		}
		w := weights[c]
		total += clampScore(r.Score) * w
		denom += w
	}
	if denom == 0 {
		return 0
	}
	return clampScore(int(math.Round(float64(total) / float64(denom))))
}
