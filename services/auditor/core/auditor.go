package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/errs"
	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/logger"
	"github.com/RuvinSL/seo-auditor/pkg/metrics"
	"github.com/RuvinSL/seo-auditor/pkg/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	progressFetchStart = 5
	progressFetchEnd   = 80
	progressAggregate  = 85
	progressRecommend  = 95
	progressDone       = 100
)

// Auditor runs the classify, select, fetch, analyze and aggregate pipeline
type Auditor struct {
	fetcher   interfaces.Fetcher
	analyzers Analyzers
	policy    Policy
	logger    interfaces.Logger
	metrics   interfaces.MetricsCollector
}

func NewAuditor(
	fetcher interfaces.Fetcher,
	analyzers Analyzers,
	policy Policy,
	log interfaces.Logger,
	collector interfaces.MetricsCollector,
) *Auditor {
	if log == nil {
		log = logger.Nop()
	}
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	if analyzers == nil {
		analyzers = NewAnalyzers(nil, policy.PageSpeedStrategy, log)
	}
	return &Auditor{
		fetcher:   fetcher,
		analyzers: analyzers,
		policy:    policy,
		logger:    log,
		metrics:   collector,
	}
}

// pageOutcome is written by exactly one fetch goroutine
type pageOutcome struct {
	results map[models.Category]models.CategoryResult
	fetched bool
	failed  bool
	skipped bool
}

// RunAudit audits the given URLs. Only malformed input returns an error;
// fetch failures, missing signals and cancellation are reported in the
// returned report. progress may be nil.
func (a *Auditor) RunAudit(
	ctx context.Context,
	urls []string,
	hints *models.CrawlHints,
	progress models.ProgressFunc,
) (*models.AuditReport, error) {
	start := time.Now()

	normalized, err := NormalizeURLs(urls)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, errs.Invalid("at least one URL is required")
	}
	if a.policy.MaxURLs > 0 && len(normalized) > a.policy.MaxURLs {
		return nil, errs.Invalid("too many URLs: %d (max %d)", len(normalized), a.policy.MaxURLs)
	}

	auditID := uuid.NewString()
	log := a.logger.With("audit_id", auditID)
	reporter := &progressReporter{fn: progress}

	log.Info("Starting audit", "url_count", len(normalized))
	reporter.report(0, "Classifying pages")

	pages := ClassifyAll(normalized, hints)
	sel := SelectPages(pages, hints, a.policy.Selection)

	byURL := make(map[string]models.PageClassification, len(pages))
	for _, pc := range pages {
		byURL[pc.URL] = pc
	}
	targets := sel.URLs(pages)

	reporter.report(progressFetchStart, fmt.Sprintf("Fetching %d pages", len(targets)))
	outcomes := a.fetchAll(ctx, log, targets, byURL, sel, reporter)

	reporter.report(progressAggregate, "Aggregating results...")

	index := make(map[string]int, len(targets))
	for i, u := range targets {
		index[u] = i
	}

	categories := make(map[models.Category]models.CategoryResult, len(models.AllCategories))
	for _, c := range models.AllCategories {
		intended := sel.Mapping[c]
		var contributions []models.CategoryResult
		// skipped pages never ran, so they do not make a category attempted
		attempted := false
		for _, u := range intended {
			i, ok := index[u]
			if !ok {
				continue
			}
			if o := outcomes[i]; o.fetched || o.failed {
				attempted = true
			}
			if r, ok := outcomes[i].results[c]; ok {
				contributions = append(contributions, r)
			}
		}
		result := Aggregate(c, intended, attempted, contributions)
		if !attempted && len(intended) > 0 && ctx.Err() != nil {
			result.Message = fmt.Sprintf("%s was not analyzed before the audit was canceled", c.DisplayName())
		}
		categories[c] = result
	}

	reporter.report(progressRecommend, "Generating recommendations...")
	recs := GenerateRecommendations(categories, a.policy.Priority)

	report := &models.AuditReport{
		ID:                  auditID,
		Categories:          categories,
		Recommendations:     recs,
		PageClassifications: pages,
		AuditMapping:        sel.Mapping,
		StartedAt:           start,
	}
	for _, o := range outcomes {
		switch {
		case o.skipped:
			report.PagesSkipped++
		case o.failed:
			report.PagesFailed++
		case o.fetched:
			report.PagesSucceeded++
		}
	}
	report.PagesAnalyzed = report.PagesSucceeded + report.PagesFailed
	report.PagesNotSelected = len(pages) - len(targets)
	report.OverallScore = OverallScore(categories, a.policy.CategoryWeights)
	report.OverallGrade = Grade(report.OverallScore)
	report.Status = reportStatus(ctx, report)
	report.CompletedAt = time.Now()

	a.metrics.RecordAudit(string(report.Status), time.Since(start).Seconds())
	log.Info("Audit completed",
		"status", report.Status,
		"overall_score", report.OverallScore,
		"pages_succeeded", report.PagesSucceeded,
		"pages_failed", report.PagesFailed,
		"pages_skipped", report.PagesSkipped,
		"pages_not_selected", report.PagesNotSelected,
		"duration", time.Since(start),
	)
	reporter.report(progressDone, "Audit complete!")

	return report, nil
}

// fetchAll fetches and analyzes every target with bounded concurrency.
// One page failing never cancels its siblings; a canceled ctx stops new fetches.
func (a *Auditor) fetchAll(
	ctx context.Context,
	log interfaces.Logger,
	targets []string,
	byURL map[string]models.PageClassification,
	sel Selection,
	reporter *progressReporter,
) []pageOutcome {
	outcomes := make([]pageOutcome, len(targets))
	if len(targets) == 0 {
		return outcomes
	}

	limit := a.policy.FetchConcurrency
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)

	var completed atomic.Int32
	total := len(targets)
	finish := func() {
		n := int(completed.Add(1))
		pct := progressFetchStart + n*(progressFetchEnd-progressFetchStart)/total
		reporter.report(pct, fmt.Sprintf("Analyzed %d/%d pages", n, total))
	}

	for i, u := range targets {
		i, u := i, u
		if ctx.Err() != nil {
			outcomes[i].skipped = true
			continue
		}
		g.Go(func() error {
			defer finish()
			if ctx.Err() != nil {
				outcomes[i].skipped = true
				return nil
			}
			outcomes[i] = a.auditPage(ctx, log, byURL[u], sel)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (a *Auditor) auditPage(ctx context.Context, log interfaces.Logger, pc models.PageClassification, sel Selection) pageOutcome {
	timeout := a.policy.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultPolicy().FetchTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	fp, err := a.fetcher.Fetch(fetchCtx, pc.URL)
	if err == nil && fp == nil {
		err = errs.New(errs.ParsingFailed, "fetcher returned no page", nil)
	}
	a.metrics.RecordPageFetch(err == nil, time.Since(start).Seconds())
	if err != nil {
		log.Warn("Page fetch failed", "url", pc.URL, "kind", errs.KindOf(err).String(), "error", err)
		return pageOutcome{failed: true}
	}

	page, err := NewPage(fp, pc.Type)
	if err != nil {
		log.Warn("Page could not be parsed", "url", pc.URL, "error", err)
		return pageOutcome{failed: true}
	}

	out := pageOutcome{fetched: true, results: make(map[models.Category]models.CategoryResult)}
	for _, c := range models.AllCategories {
		if !sel.Runs(c, pc) {
			continue
		}
		analyzer, ok := a.analyzers[c]
		if !ok {
			continue
		}
		result := analyzer.Analyze(ctx, page)
		// keyed by the requested URL so aggregation matches the mapping after redirects
		result.SourcePages = []string{pc.URL}
		out.results[c] = result
	}

	log.Debug("Page analyzed", "url", pc.URL, "type", pc.Type, "categories", len(out.results))
	return out
}

func reportStatus(ctx context.Context, r *models.AuditReport) models.ReportStatus {
	switch {
	case ctx.Err() != nil:
		return models.ReportCanceled
	case r.PagesSucceeded == 0:
		return models.ReportFailed
	case r.PagesFailed > 0:
		return models.ReportPartial
	default:
		return models.ReportComplete
	}
}

// progressReporter serializes callbacks and never lets the percentage go down
type progressReporter struct {
	mu   sync.Mutex
	last int
	fn   models.ProgressFunc
}

func (r *progressReporter) report(percent int, label string) {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if percent < r.last {
		percent = r.last
	}
	r.last = percent
	r.fn(models.Progress{Percent: percent, Label: label})
}
