package core

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

// CategoryAnalyzer scores one page for one category.
// Only the performance analyzer may block, on its optional lab-metrics lookup.
type CategoryAnalyzer interface {
	Category() models.Category
	Analyze(ctx context.Context, page *Page) models.CategoryResult
}

// Analyzers is the registry of category analyzers
type Analyzers map[models.Category]CategoryAnalyzer

type checkFunc func(p *Page) []models.Check

type staticAnalyzer struct {
	category models.Category
	checks   checkFunc
}

func (a staticAnalyzer) Category() models.Category { return a.category }

func (a staticAnalyzer) Analyze(_ context.Context, p *Page) models.CategoryResult {
	return newResult(a.category, p, a.checks(p), "")
}

// NewAnalyzers wires every category analyzer. pageSpeed may be nil.
func NewAnalyzers(pageSpeed interfaces.PageSpeedClient, strategy string, logger interfaces.Logger) Analyzers {
	return Analyzers{
		models.CategorySEO:          staticAnalyzer{models.CategorySEO, seoChecks},
		models.CategoryLocalSEO:     staticAnalyzer{models.CategoryLocalSEO, localSEOChecks},
		models.CategoryContent:      staticAnalyzer{models.CategoryContent, contentChecks},
		models.CategoryPerformance:  NewPerformanceAnalyzer(pageSpeed, strategy, logger),
		models.CategoryEEAT:         staticAnalyzer{models.CategoryEEAT, eeatChecks},
		models.CategorySocial:       staticAnalyzer{models.CategorySocial, socialChecks},
		models.CategoryTechnology:   staticAnalyzer{models.CategoryTechnology, technologyChecks},
		models.CategoryLinks:        staticAnalyzer{models.CategoryLinks, linkChecks},
		models.CategoryUsability:    staticAnalyzer{models.CategoryUsability, usabilityChecks},
		models.CategoryTechnicalSEO: staticAnalyzer{models.CategoryTechnicalSEO, technicalSEOChecks},
	}
}

// Analyze runs one category on one fetched page without a network lookup
func Analyze(category models.Category, fp *models.FetchedPage, pageType models.PageType) (models.CategoryResult, error) {
	p, err := NewPage(fp, pageType)
	if err != nil {
		return models.CategoryResult{}, err
	}
	analyzer, ok := NewAnalyzers(nil, "", nil)[category]
	if !ok {
		return models.CategoryResult{}, fmt.Errorf("unknown category %q", category)
	}
	return analyzer.Analyze(context.Background(), p), nil
}

func newResult(c models.Category, p *Page, checks []models.Check, message string) models.CategoryResult {
	score := WeightedScore(checks)
	if message == "" {
		message = fmt.Sprintf("%s analysis complete", c.DisplayName())
	}
	return models.CategoryResult{
		Category:    c,
		Score:       score,
		Grade:       Grade(score),
		Message:     message,
		Checks:      checks,
		SourcePages: []string{p.URL},
		Attempted:   true,
		PageCount:   1,
	}
}

// tokenize lower-cases and splits on anything that is not a letter or digit
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func percent(part, total int) int {
	if total == 0 {
		return 100
	}
	return part * 100 / total
}
