package core

import (
	"fmt"
	"sort"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

// PriorityFor maps a check to a priority. For a fixed weight a lower score
// never gets a lower priority.
func (pp PriorityPolicy) PriorityFor(score, weight int) models.Priority {
	switch {
	case score < pp.HighScoreBelow && weight >= pp.HighMinWeight:
		return models.PriorityHigh
	case score < pp.MediumScoreBelow:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// GenerateRecommendations emits one recommendation per check that carries
// recommendation text. Categories are walked in report order and checks in
// merged order; the result is stably sorted by priority.
func GenerateRecommendations(categories map[models.Category]models.CategoryResult, pp PriorityPolicy) []models.Recommendation {
	recs := make([]models.Recommendation, 0)
	for _, cat := range models.AllCategories {
		result, ok := categories[cat]
		if !ok {
			continue
		}
		for _, check := range result.Checks {
			if check.Recommendation == "" {
				continue
			}
			sources := check.SourcePages
			if len(sources) == 0 {
				sources = result.SourcePages
			}
			recs = append(recs, models.Recommendation{
				ID:           fmt.Sprintf("rec_%d", len(recs)+1),
				Title:        check.Recommendation,
				Description:  check.Message,
				Category:     cat,
				CategoryName: cat.DisplayName(),
				Priority:     pp.PriorityFor(check.Score, check.Weight),
				CheckID:      check.ID,
				SourcePages:  append([]string(nil), sources...),
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}
