package core

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/errs"
	"github.com/RuvinSL/seo-auditor/pkg/mocks"
	"github.com/RuvinSL/seo-auditor/pkg/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var siteURLs = []string{
	"https://example.com/",
	"https://example.com/contact",
	"https://example.com/about",
	"https://example.com/blog/first-post",
	"https://example.com/services/repairs",
}

func testPolicy() Policy {
	p := DefaultPolicy()
	p.FetchTimeout = time.Second
	return p
}

func servePages(ctx context.Context, url string) (*models.FetchedPage, error) {
	return fetched(url, wellFormedPage), nil
}

func newTestAuditor(fetcher *mocks.MockFetcher, policy Policy) *Auditor {
	return NewAuditor(fetcher, NewAnalyzers(nil, "mobile", nil), policy, nil, nil)
}

func TestAuditor_CompleteRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(servePages).Times(len(siteURLs))

	report, err := newTestAuditor(fetcher, testPolicy()).RunAudit(context.Background(), siteURLs, nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, models.ReportComplete, report.Status)
	assert.Equal(t, 5, report.PagesAnalyzed)
	assert.Equal(t, 5, report.PagesSucceeded)
	assert.Equal(t, 0, report.PagesFailed)
	assert.Len(t, report.PageClassifications, 5)
	assert.Len(t, report.Categories, len(models.AllCategories))
	assert.Equal(t, Grade(report.OverallScore), report.OverallGrade)
	assert.False(t, report.CompletedAt.Before(report.StartedAt))

	for _, c := range models.AllCategories {
		result := report.Categories[c]
		assert.True(t, result.Attempted, c)
		assert.Positive(t, result.PageCount, c)
		assert.NotEmpty(t, report.AuditMapping[c], c)
	}
	assert.Equal(t, []string{"https://example.com/", "https://example.com/contact"}, report.AuditMapping[models.CategoryLocalSEO])
}

// One of five fetches times out.
func TestAuditor_FetchTimeoutIsPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slow := "https://example.com/blog/first-post"
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string) (*models.FetchedPage, error) {
			if url == slow {
				<-ctx.Done()
				return nil, errs.New(errs.Timeout, "request timed out", ctx.Err())
			}
			return servePages(ctx, url)
		}).Times(len(siteURLs))

	policy := testPolicy()
	policy.FetchTimeout = 50 * time.Millisecond

	report, err := newTestAuditor(fetcher, policy).RunAudit(context.Background(), siteURLs, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, report.PagesAnalyzed)
	assert.Equal(t, 1, report.PagesFailed)
	assert.Equal(t, 4, report.PagesSucceeded)
	assert.Equal(t, models.ReportPartial, report.Status)

	social := report.Categories[models.CategorySocial]
	assert.Equal(t, []string{"https://example.com/"}, social.SourcePages)
	assert.Equal(t, 1, social.PageCount)
}

func TestAuditor_CategoryWithOnlyFailedPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	post := "https://example.com/blog/first-post"
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://example.com/").DoAndReturn(servePages)
	fetcher.EXPECT().Fetch(gomock.Any(), post).Return(nil, errs.New(errs.UpstreamStatus, "HTTP error: 500", nil))

	report, err := newTestAuditor(fetcher, testPolicy()).RunAudit(context.Background(), []string{"https://example.com/", post}, nil, nil)
	require.NoError(t, err)

	content := report.Categories[models.CategoryContent]
	assert.True(t, content.Attempted)
	assert.Equal(t, 0, content.Score)
	assert.Equal(t, 0, content.PageCount)
	assert.Empty(t, content.Checks)
	assert.Equal(t, []string{post}, content.SourcePages)

	assert.Equal(t, models.ReportPartial, report.Status)
	assert.Positive(t, report.Categories[models.CategoryLocalSEO].Score)
}

func TestAuditor_TotalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(nil, errs.New(errs.Unreachable, "connection refused", nil)).
		Times(len(siteURLs))

	report, err := newTestAuditor(fetcher, testPolicy()).RunAudit(context.Background(), siteURLs, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.ReportFailed, report.Status)
	assert.Equal(t, 0, report.PagesSucceeded)
	assert.Equal(t, 5, report.PagesFailed)
	assert.Equal(t, 0, report.OverallScore)
	for _, c := range models.AllCategories {
		assert.Equal(t, 0, report.Categories[c].Score, c)
		assert.Empty(t, report.Categories[c].Checks, c)
	}
	assert.Empty(t, report.Recommendations)
}

func TestAuditor_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		urls []string
	}{
		{"empty", nil},
		{"blank only", []string{" ", ""}},
		{"bad scheme", []string{"https://example.com/", "ftp://example.com/"}},
		{"too many", manyURLs(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			policy := testPolicy()
			policy.MaxURLs = 2

			_, err := newTestAuditor(mocks.NewMockFetcher(ctrl), policy).RunAudit(context.Background(), tt.urls, nil, nil)
			require.Error(t, err)
			assert.True(t, errs.IsKind(err, errs.InvalidInput))
		})
	}
}

func manyURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/page-%d", i)
	}
	return urls
}

func TestAuditor_CanceledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestAuditor(mocks.NewMockFetcher(ctrl), testPolicy()).RunAudit(ctx, siteURLs, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.ReportCanceled, report.Status)
	assert.Equal(t, 0, report.PagesAnalyzed)
	assert.Equal(t, 5, report.PagesSkipped)
}

func TestAuditor_CancelStopsNewFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fetchedURL string
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(fctx context.Context, url string) (*models.FetchedPage, error) {
			fetchedURL = url
			cancel()
			return servePages(fctx, url)
		}).Times(1)

	policy := testPolicy()
	policy.FetchConcurrency = 1

	report, err := newTestAuditor(fetcher, policy).RunAudit(ctx, siteURLs, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, models.ReportCanceled, report.Status)
	assert.Equal(t, 1, report.PagesSucceeded)
	assert.Equal(t, 4, report.PagesSkipped)
	assert.Equal(t, 1, report.PagesAnalyzed)
	assert.Positive(t, report.Categories[models.CategoryLocalSEO].PageCount)

	ran := make(map[models.Category]models.CategoryResult)
	for _, c := range models.AllCategories {
		result := report.Categories[c]
		onlySkipped := true
		for _, u := range report.AuditMapping[c] {
			if u == fetchedURL {
				onlySkipped = false
			}
		}
		if len(report.AuditMapping[c]) > 0 && onlySkipped {
			assert.False(t, result.Attempted, "category %s never ran", c)
			assert.Equal(t, 0, result.PageCount, "category %s", c)
			assert.Contains(t, result.Message, "canceled")
			continue
		}
		ran[c] = result
	}
	assert.Less(t, len(ran), len(models.AllCategories))
	assert.Equal(t, OverallScore(ran, policy.CategoryWeights), report.OverallScore)
}

func TestAuditor_CountsPagesNotSelected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	urls := append([]string{}, siteURLs...)
	urls = append(urls, "https://example.com/privacy")

	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(servePages).AnyTimes()

	report, err := newTestAuditor(fetcher, testPolicy()).RunAudit(context.Background(), urls, nil, nil)
	require.NoError(t, err)

	assert.Len(t, report.PageClassifications, len(urls))
	accounted := report.PagesSucceeded + report.PagesFailed + report.PagesSkipped + report.PagesNotSelected
	assert.Equal(t, len(urls), accounted)
	for _, c := range models.AllCategories {
		assert.NotContains(t, report.AuditMapping[c], "https://example.com/privacy")
	}
	assert.Equal(t, 1, report.PagesNotSelected)
}

func TestAuditor_ProgressIsMonotonic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(servePages).AnyTimes()

	var events []models.Progress
	_, err := newTestAuditor(fetcher, testPolicy()).RunAudit(context.Background(), siteURLs, nil, func(p models.Progress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, 0, events[0].Percent)
	last := events[len(events)-1]
	assert.Equal(t, 100, last.Percent)
	assert.Equal(t, "Audit complete!", last.Label)
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].Percent, events[i-1].Percent)
	}
}

func TestAuditor_Deterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bodies := map[string]string{
		"https://example.com/":                 wellFormedPage,
		"https://example.com/contact":          "<html><body><h1>Contact</h1><a href=\"tel:123\">x</a></body></html>",
		"https://example.com/about":            "<html><body><h1>About</h1><p>award winning</p></body></html>",
		"https://example.com/blog/first-post":  "<html><head><title>Post</title></head><body><h1>Post</h1></body></html>",
		"https://example.com/services/repairs": "<html><body><h2>No h1</h2></body></html>",
	}
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string) (*models.FetchedPage, error) {
			// vary completion order between runs
			time.Sleep(time.Duration(len(url)%4) * time.Millisecond)
			return fetched(url, bodies[url]), nil
		}).AnyTimes()

	auditor := newTestAuditor(fetcher, testPolicy())
	first, err := auditor.RunAudit(context.Background(), siteURLs, nil, nil)
	require.NoError(t, err)

	second, err := auditor.RunAudit(context.Background(), siteURLs, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.Recommendations, second.Recommendations)
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAuditor_ResultsKeyedByRequestedURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), "https://example.com/").Return(
		fetched("https://www.example.com/home", wellFormedPage), nil)

	report, err := newTestAuditor(fetcher, testPolicy()).RunAudit(context.Background(), []string{"https://example.com"}, nil, nil)
	require.NoError(t, err)

	perf := report.Categories[models.CategoryPerformance]
	assert.Equal(t, []string{"https://example.com/"}, perf.SourcePages)
	for _, check := range perf.Checks {
		assert.Equal(t, []string{"https://example.com/"}, check.SourcePages)
	}
}

func TestAuditor_RecordsMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string) (*models.FetchedPage, error) {
			if strings.Contains(url, "about") {
				return nil, errs.New(errs.Unreachable, "refused", nil)
			}
			return servePages(ctx, url)
		}).Times(len(siteURLs))

	metrics := mocks.NewMockMetricsCollector(ctrl)
	metrics.EXPECT().RecordPageFetch(true, gomock.Any()).Times(4)
	metrics.EXPECT().RecordPageFetch(false, gomock.Any()).Times(1)
	metrics.EXPECT().RecordAudit("partial", gomock.Any()).Times(1)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().With("audit_id", gomock.Any()).Return(mockLogger)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn("Page fetch failed", gomock.Any()).Times(1)

	auditor := NewAuditor(fetcher, nil, testPolicy(), mockLogger, metrics)
	report, err := auditor.RunAudit(context.Background(), siteURLs, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ReportPartial, report.Status)
}
