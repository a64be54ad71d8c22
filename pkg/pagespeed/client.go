package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/errs"
	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/models"
	"golang.org/x/time/rate"
)

const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Client looks up lab metrics from the PageSpeed Insights API
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	logger   interfaces.Logger
	metrics  interfaces.MetricsCollector

	cacheMu sync.RWMutex
	cache   map[string]*models.CoreWebVitals
}

// Config holds the client settings
type Config struct {
	APIKey            string
	Endpoint          string
	Timeout           time.Duration
	RequestsPerSecond float64
}

func New(cfg Config, logger interfaces.Logger, metrics interfaces.MetricsCollector) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}

	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:   logger,
		metrics:  metrics,
		cache:    make(map[string]*models.CoreWebVitals),
	}
}

// PSIResponse is the subset of the PageSpeed Insights response we read
type PSIResponse struct {
	LighthouseResult *LighthouseResult `json:"lighthouseResult"`
}

type LighthouseResult struct {
	Categories map[string]LighthouseCategory `json:"categories"`
	Audits     map[string]LighthouseAudit    `json:"audits"`
}

type LighthouseCategory struct {
	Score float64 `json:"score"`
}

type LighthouseAudit struct {
	NumericValue float64 `json:"numericValue"`
}

// GetPageSpeed returns cached or freshly fetched metrics for the URL
func (c *Client) GetPageSpeed(ctx context.Context, targetURL, strategy string) (*models.CoreWebVitals, error) {
	if strategy == "" {
		strategy = "mobile"
	}

	cacheKey := strategy + ":" + targetURL
	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		c.metrics.RecordPageSpeed("cached", 0)
		return cached, nil
	}
	c.cacheMu.RUnlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errs.New(errs.Canceled, "pagespeed rate limiter", err)
	}

	start := time.Now()
	result, err := c.fetch(ctx, targetURL, strategy)
	duration := time.Since(start).Seconds()
	if err != nil {
		c.metrics.RecordPageSpeed("failure", duration)
		c.logger.Debug("PageSpeed lookup failed", "url", targetURL, "strategy", strategy, "error", err)
		return nil, err
	}
	c.metrics.RecordPageSpeed("success", duration)

	c.cacheMu.Lock()
	c.cache[cacheKey] = result
	c.cacheMu.Unlock()

	return result, nil
}

func (c *Client) fetch(ctx context.Context, targetURL, strategy string) (*models.CoreWebVitals, error) {
	q := url.Values{}
	q.Set("url", targetURL)
	q.Set("strategy", strategy)
	q.Set("category", "performance")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errs.New(errs.InvalidInput, "failed to create pagespeed request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.New(errs.Unreachable, "pagespeed request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.AppError{
			Kind:           errs.UpstreamStatus,
			UpstreamStatus: resp.StatusCode,
			Message:        fmt.Sprintf("pagespeed API returned status %d", resp.StatusCode),
		}
	}

	var psi PSIResponse
	if err := json.NewDecoder(resp.Body).Decode(&psi); err != nil {
		return nil, errs.New(errs.ParsingFailed, "failed to parse pagespeed response", err)
	}
	if psi.LighthouseResult == nil {
		return nil, errs.New(errs.ParsingFailed, "pagespeed response has no lighthouse result", nil)
	}

	lr := psi.LighthouseResult
	result := &models.CoreWebVitals{
		URL:       targetURL,
		Strategy:  strategy,
		FetchedAt: time.Now(),
	}

	if perf, ok := lr.Categories["performance"]; ok {
		result.Score = int(math.Round(perf.Score * 100))
	}

	audit := func(name string) float64 {
		return lr.Audits[name].NumericValue
	}
	result.LCP = audit("largest-contentful-paint")
	result.FCP = audit("first-contentful-paint")
	result.CLS = audit("cumulative-layout-shift")
	result.TBT = audit("total-blocking-time")
	result.SpeedIndex = audit("speed-index")
	result.TTFB = audit("server-response-time")
	result.INP = audit("interaction-to-next-paint")

	return result, nil
}

// CheckHealth reports whether the client is configured
func (c *Client) CheckHealth(ctx context.Context) error {
	if c.apiKey == "" {
		return fmt.Errorf("no API key configured")
	}
	return nil
}

var (
	_ interfaces.PageSpeedClient = (*Client)(nil)
	_ interfaces.HealthChecker   = (*Client)(nil)
)
