package interfaces

import (
	"context"

	"github.com/RuvinSL/seo-auditor/pkg/models"
)

// Auditor runs a full audit over a set of URLs
type Auditor interface {
	RunAudit(ctx context.Context, urls []string, hints *models.CrawlHints, progress models.ProgressFunc) (*models.AuditReport, error)
}

// Fetcher retrieves one page. It must return an error, never an empty page,
// on network failure, timeout or a non-2xx status.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.FetchedPage, error)
}

// PageSpeedClient looks up lab metrics for a URL from an external service
type PageSpeedClient interface {
	GetPageSpeed(ctx context.Context, url, strategy string) (*models.CoreWebVitals, error)
}

// Logger defines the contract for logging operations
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordRequest(method, path string, statusCode int, duration float64)
	RecordAudit(status string, duration float64)
	RecordPageFetch(success bool, duration float64)
	RecordPageSpeed(status string, duration float64)
}

// HealthChecker defines the contract for health check operations
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
