package core

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/logger"
	"github.com/RuvinSL/seo-auditor/pkg/models"
)

const heuristicOnlyMessage = "Performance analysis complete (heuristic only, lab metrics unavailable)"

var compressionEncodings = []string{"gzip", "br", "deflate", "zstd"}

// PerformanceAnalyzer scores server-side speed signals and, when a
// PageSpeed client is configured, lab metrics for the page.
type PerformanceAnalyzer struct {
	pageSpeed interfaces.PageSpeedClient
	strategy  string
	logger    interfaces.Logger
}

// NewPerformanceAnalyzer creates the analyzer. pageSpeed and logger may be nil.
func NewPerformanceAnalyzer(pageSpeed interfaces.PageSpeedClient, strategy string, log interfaces.Logger) *PerformanceAnalyzer {
	if log == nil {
		log = logger.Nop()
	}
	if strategy == "" {
		strategy = "mobile"
	}
	return &PerformanceAnalyzer{
		pageSpeed: pageSpeed,
		strategy:  strategy,
		logger:    log,
	}
}

func (a *PerformanceAnalyzer) Category() models.Category { return models.CategoryPerformance }

// Analyze never fails. A PageSpeed error drops the lab checks and is logged.
func (a *PerformanceAnalyzer) Analyze(ctx context.Context, p *Page) models.CategoryResult {
	checks := []models.Check{
		responseTimeCheck(p),
		pageSizeCheck(p),
		httpsCheck(p),
		compressionCheck(p),
	}

	vitals := a.lookup(ctx, p.URL)
	if vitals == nil {
		return newResult(models.CategoryPerformance, p, checks, heuristicOnlyMessage)
	}

	checks = append(checks, labChecks(vitals)...)
	return newResult(models.CategoryPerformance, p, checks,
		fmt.Sprintf("Performance analysis complete (lab metrics, %s)", vitals.Strategy))
}

func (a *PerformanceAnalyzer) lookup(ctx context.Context, url string) *models.CoreWebVitals {
	if a.pageSpeed == nil {
		return nil
	}
	vitals, err := a.pageSpeed.GetPageSpeed(ctx, url, a.strategy)
	if err != nil {
		a.logger.Warn("PageSpeed lookup failed, using heuristics only", "url", url, "error", err)
		return nil
	}
	return vitals
}

func responseTimeCheck(p *Page) models.Check {
	ms := p.ResponseTimeMs
	th := Thresholds
	c := models.Check{
		ID:     "response-time",
		Name:   "Server Response Time",
		Weight: 20,
		Value:  map[string]any{"ms": ms},
	}

	switch {
	case ms <= th.FastResponseMs:
		c.Score = 100
	case ms <= th.GoodResponseMs:
		c.Score = 85
	case ms <= th.OKResponseMs:
		c.Score = 70
	case ms <= th.SlowResponseMs:
		c.Score = 50
	default:
		c.Score = 20
	}

	switch {
	case ms <= th.OKResponseMs:
		c.Status = models.StatusPass
		c.Message = fmt.Sprintf("Server responded in %dms", ms)
	case ms <= th.SlowResponseMs:
		c.Status = models.StatusWarning
		c.Message = fmt.Sprintf("Slow server response (%dms)", ms)
		c.Recommendation = "Reduce server response time with caching or a faster host"
	default:
		c.Status = models.StatusFail
		c.Message = fmt.Sprintf("Very slow server response (%dms)", ms)
		c.Recommendation = "Server response time is over 2 seconds; add caching or a CDN"
	}
	return c
}

func pageSizeCheck(p *Page) models.Check {
	size := p.ContentLengthBytes
	if size <= 0 {
		size = int64(len(p.HTML))
	}
	mb := math.Round(float64(size)/(1024*1024)*100) / 100
	th := Thresholds
	c := models.Check{
		ID:     "page-size",
		Name:   "Page Size",
		Weight: 20,
		Value:  map[string]any{"bytes": size, "mb": mb},
	}

	switch {
	case mb <= th.SmallPageMB:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("Page size is %.2f MB", mb)
	case mb <= th.MediumPageMB:
		c.Status, c.Score = models.StatusPass, 80
		c.Message = fmt.Sprintf("Page size is %.2f MB", mb)
	case mb <= th.LargePageMB:
		c.Status, c.Score = models.StatusWarning, 50
		c.Message = fmt.Sprintf("Large page (%.2f MB)", mb)
		c.Recommendation = "Reduce HTML size by removing inline scripts and unused markup"
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = fmt.Sprintf("Very large page (%.2f MB)", mb)
		c.Recommendation = "Reduce HTML size below 2 MB"
	}
	return c
}

func httpsCheck(p *Page) models.Check {
	c := models.Check{
		ID:     "https",
		Name:   "HTTPS",
		Weight: 15,
		Value:  map[string]any{"https": p.IsHTTPS},
	}
	if p.IsHTTPS {
		c.Status, c.Score = models.StatusPass, 100
		c.Message = "Page is served over HTTPS"
		return c
	}
	c.Status, c.Score = models.StatusFail, 0
	c.Message = "Page is not served over HTTPS"
	c.Recommendation = "Serve the site over HTTPS"
	return c
}

func compressionCheck(p *Page) models.Check {
	encoding := strings.ToLower(p.Header("content-encoding"))
	c := models.Check{
		ID:     "compression",
		Name:   "Compression",
		Weight: 10,
		Value:  map[string]any{"encoding": encoding},
	}
	for _, e := range compressionEncodings {
		if strings.Contains(encoding, e) {
			c.Status, c.Score = models.StatusPass, 100
			c.Message = fmt.Sprintf("Response is compressed (%s)", encoding)
			return c
		}
	}
	c.Status, c.Score = models.StatusWarning, 40
	c.Message = "Response is not compressed"
	c.Recommendation = "Enable gzip or Brotli compression on the server"
	return c
}

func labChecks(v *models.CoreWebVitals) []models.Check {
	th := Thresholds

	score := models.Check{
		ID:     "lab-performance-score",
		Name:   "Lab Performance Score",
		Weight: 15,
		Score:  clampScore(v.Score),
		Value:  map[string]any{"score": v.Score, "strategy": v.Strategy},
	}
	switch {
	case v.Score >= th.LabScoreGood:
		score.Status = models.StatusPass
		score.Message = fmt.Sprintf("Lab performance score is %d", v.Score)
	case v.Score >= th.LabScorePoor:
		score.Status = models.StatusWarning
		score.Message = fmt.Sprintf("Lab performance score is %d", v.Score)
		score.Recommendation = "Address the opportunities reported by PageSpeed Insights"
	default:
		score.Status = models.StatusFail
		score.Message = fmt.Sprintf("Poor lab performance score (%d)", v.Score)
		score.Recommendation = "Address the opportunities reported by PageSpeed Insights"
	}

	checks := []models.Check{
		score,
		vitalCheck("largest-contentful-paint", "Largest Contentful Paint", 15, v.LCP, th.LCPGoodMs, th.LCPPoorMs, "ms",
			"Optimise the hero image and server response to speed up LCP"),
		vitalCheck("cumulative-layout-shift", "Cumulative Layout Shift", 10, v.CLS, th.CLSGood, th.CLSPoor, "",
			"Reserve space for images and embeds to avoid layout shifts"),
	}

	if v.INP > 0 {
		checks = append(checks, vitalCheck("interaction-to-next-paint", "Interaction to Next Paint", 10, v.INP, th.INPGoodMs, th.INPPoorMs, "ms",
			"Break up long JavaScript tasks to improve responsiveness"))
	} else {
		checks = append(checks, vitalCheck("total-blocking-time", "Total Blocking Time", 10, v.TBT, th.TBTGoodMs, th.TBTPoorMs, "ms",
			"Reduce main-thread JavaScript work to lower blocking time"))
	}
	return checks
}

func vitalCheck(id, name string, weight int, value, good, poor float64, unit, fix string) models.Check {
	c := models.Check{
		ID:     id,
		Name:   name,
		Weight: weight,
		Value:  map[string]any{"value": value, "good": good, "poor": poor},
	}

	shown := fmt.Sprintf("%.0f%s", value, unit)
	if unit == "" {
		shown = fmt.Sprintf("%.2f", value)
	}

	switch {
	case value <= good:
		c.Status, c.Score = models.StatusPass, 100
		c.Message = fmt.Sprintf("%s is good (%s)", name, shown)
	case value <= poor:
		c.Status, c.Score = models.StatusWarning, 60
		c.Message = fmt.Sprintf("%s needs improvement (%s)", name, shown)
		c.Recommendation = fix
	default:
		c.Status, c.Score = models.StatusFail, 20
		c.Message = fmt.Sprintf("%s is poor (%s)", name, shown)
		c.Recommendation = fix
	}
	return c
}
