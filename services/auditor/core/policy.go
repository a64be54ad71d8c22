package core

import (
	"math"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

// Policy holds every tunable constant of an audit run
type Policy struct {
	// CategoryWeights drives the overall score.
	CategoryWeights map[models.Category]int

	FetchConcurrency  int
	FetchTimeout      time.Duration
	MaxURLs           int
	PageSpeedStrategy string

	Selection SelectionPolicy
	Priority  PriorityPolicy
}

// SelectionPolicy bounds how many pages feed each category
type SelectionPolicy struct {
	SEOMinPages     int
	SEOMaxPages     int
	ContentMaxPages int
	EEATMaxPages    int
	SocialBlogPages int
	LinksMaxPages   int
}

// PriorityPolicy maps a check's score and weight to a recommendation priority.
// Priority is non-increasing in score for a fixed weight.
type PriorityPolicy struct {
	HighScoreBelow   int
	HighMinWeight    int
	MediumScoreBelow int
}

// DefaultPolicy returns the production constants
func DefaultPolicy() Policy {
	return Policy{
		CategoryWeights: map[models.Category]int{
			models.CategoryLocalSEO:     25,
			models.CategorySEO:          15,
			models.CategoryLinks:        10,
			models.CategoryUsability:    10,
			models.CategoryPerformance:  10,
			models.CategoryTechnicalSEO: 8,
			models.CategoryContent:      6,
			models.CategoryEEAT:         6,
			models.CategorySocial:       5,
			models.CategoryTechnology:   5,
		},
		FetchConcurrency:  4,
		FetchTimeout:      15 * time.Second,
		MaxURLs:           50,
		PageSpeedStrategy: "mobile",
		Selection: SelectionPolicy{
			SEOMinPages:     3,
			SEOMaxPages:     5,
			ContentMaxPages: 3,
			EEATMaxPages:    3,
			SocialBlogPages: 2,
			LinksMaxPages:   5,
		},
		Priority: PriorityPolicy{
			HighScoreBelow:   50,
			HighMinWeight:    10,
			MediumScoreBelow: 70,
		},
	}
}

// GradeBand maps a minimum score to a letter grade
type GradeBand struct {
	MinScore int
	Grade    string
}

// GradeScale is ordered from the highest band down and ends at 0
var GradeScale = []GradeBand{
	{90, "A+"},
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{50, "D"},
	{0, "F"},
}

// Grade returns the letter grade for a score in [0,100]
func Grade(score int) string {
	for _, band := range GradeScale {
		if score >= band.MinScore {
			return band.Grade
		}
	}
	return GradeScale[len(GradeScale)-1].Grade
}

// WeightedScore is round(Σ score×weight / Σ weight), 0 when there are no checks
func WeightedScore(checks []models.Check) int {
	var total, weights int
	for _, c := range checks {
		total += clampScore(c.Score) * c.Weight
		weights += c.Weight
	}
	if weights == 0 {
		return 0
	}
	return clampScore(int(math.Round(float64(total) / float64(weights))))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// AnalyzerThresholds are the heuristic cut-offs used by the category analyzers
type AnalyzerThresholds struct {
	TitleMinLength    int
	TitleMaxLength    int
	MetaDescMinLength int
	MetaDescMaxLength int

	ThinContentWords   int
	ShortContentWords  int
	LongFormWords      int
	ContextualMinWords int

	InternalLinksGood int
	InternalLinksOK   int
	InternalLinksLow  int

	ImageAltPassPercent int

	FastResponseMs      int64
	GoodResponseMs      int64
	OKResponseMs        int64
	SlowResponseMs      int64
	SmallPageMB         float64
	MediumPageMB        float64
	LargePageMB         float64
	ResourceCountGood   int
	ResourceCountOK     int
	ExternalLinksMax    int
	FormLabelRatio      float64
	LCPGoodMs           float64
	LCPPoorMs           float64
	CLSGood             float64
	CLSPoor             float64
	INPGoodMs           float64
	INPPoorMs           float64
	TBTGoodMs           float64
	TBTPoorMs           float64
	LabScoreGood        int
	LabScorePoor        int
	SocialPlatformsGood int
}

// Thresholds for page analysis
var Thresholds = AnalyzerThresholds{
	TitleMinLength:    30,
	TitleMaxLength:    60,
	MetaDescMinLength: 120,
	MetaDescMaxLength: 160,

	ThinContentWords:   300,
	ShortContentWords:  100,
	LongFormWords:      1000,
	ContextualMinWords: 500,

	InternalLinksGood: 10,
	InternalLinksOK:   5,
	InternalLinksLow:  2,

	ImageAltPassPercent: 90,

	FastResponseMs:      200,
	GoodResponseMs:      500,
	OKResponseMs:        1000,
	SlowResponseMs:      2000,
	SmallPageMB:         0.5,
	MediumPageMB:        1,
	LargePageMB:         2,
	ResourceCountGood:   10,
	ResourceCountOK:     20,
	ExternalLinksMax:    50,
	FormLabelRatio:      0.8,
	LCPGoodMs:           2500,
	LCPPoorMs:           4000,
	CLSGood:             0.1,
	CLSPoor:             0.25,
	INPGoodMs:           200,
	INPPoorMs:           500,
	TBTGoodMs:           200,
	TBTPoorMs:           600,
	LabScoreGood:        90,
	LabScorePoor:        50,
	SocialPlatformsGood: 3,
}
