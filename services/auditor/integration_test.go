package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/httpclient"
	"github.com/RuvinSL/seo-auditor/pkg/logger"
	"github.com/RuvinSL/seo-auditor/pkg/metrics"
	"github.com/RuvinSL/seo-auditor/pkg/models"
	"github.com/RuvinSL/seo-auditor/pkg/report"
	"github.com/RuvinSL/seo-auditor/services/auditor/core"
	"github.com/RuvinSL/seo-auditor/services/auditor/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%[1]s | Riverside Plumbing</title>
<meta name="description" content="Riverside Plumbing offers emergency plumbing repairs, drain cleaning and boiler servicing for homes across the riverside district.">
<link rel="canonical" href="%[2]s">
</head>
<body>
<main>
<h1>%[1]s</h1>
<p>Call us on <a href="tel:+15551234567">(555) 123-4567</a> or visit 12 Mill Street.</p>
<p><a href="/">Home</a> <a href="/contact">Contact</a> <a href="https://example.org/guide">Guide</a></p>
</main>
</body>
</html>`

// startSite serves a small site where /services/broken always fails
func startSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/services/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		title := strings.Trim(r.URL.Path, "/")
		if title == "" {
			title = "home"
		}
		fmt.Fprintf(w, sitePage, title, "http://"+r.Host+r.URL.Path)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func startService(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.Nop()

	policy := core.DefaultPolicy()
	policy.FetchTimeout = 5 * time.Second
	auditor := core.NewAuditor(
		httpclient.New(5*time.Second, log, httpclient.WithUserAgent("SEOAuditor-Test/1.0")),
		nil,
		policy,
		log,
		metrics.NopCollector{},
	)

	srv := httptest.NewServer(newRouter(
		handlers.NewAuditHandler(auditor, log),
		handlers.NewHealthHandler(serviceName, "test", nil),
		log,
		metrics.NopCollector{},
	))
	t.Cleanup(srv.Close)
	return srv
}

func auditBody(site string) string {
	urls := []string{site + "/", site + "/contact", site + "/blog/first-post", site + "/services/broken"}
	data, _ := json.Marshal(models.AuditRequest{URLs: urls})
	return string(data)
}

func TestIntegration_AuditFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	site := startSite(t)
	service := startService(t)

	t.Run("audit", func(t *testing.T) {
		resp, err := http.Post(service.URL+"/api/v1/audit", "application/json", strings.NewReader(auditBody(site.URL)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result models.AuditReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

		assert.Equal(t, models.ReportPartial, result.Status)
		assert.Equal(t, 4, result.PagesAnalyzed)
		assert.Equal(t, 3, result.PagesSucceeded)
		assert.Equal(t, 1, result.PagesFailed)
		assert.Len(t, result.Categories, len(models.AllCategories))
		assert.Len(t, result.PageClassifications, 4)
		assert.GreaterOrEqual(t, result.OverallScore, 0)
		assert.LessOrEqual(t, result.OverallScore, 100)

		local := result.Categories[models.CategoryLocalSEO]
		assert.True(t, local.Attempted)
		assert.Equal(t, 2, local.PageCount)
		assert.Equal(t, []string{site.URL + "/", site.URL + "/contact"}, local.SourcePages)

		for _, rec := range result.Recommendations {
			assert.NotContains(t, rec.SourcePages, site.URL+"/services/broken")
		}
	})

	t.Run("stream", func(t *testing.T) {
		resp, err := http.Post(service.URL+"/api/v1/audit/stream", "application/json", strings.NewReader(auditBody(site.URL)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var events []models.StreamEvent
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			var ev models.StreamEvent
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
			events = append(events, ev)
		}
		require.NoError(t, scanner.Err())
		require.NotEmpty(t, events)

		last := -1
		for _, ev := range events[:len(events)-1] {
			require.Equal(t, "progress", ev.Type)
			assert.GreaterOrEqual(t, ev.Progress.Percent, last)
			last = ev.Progress.Percent
		}
		assert.Equal(t, 100, last)
		assert.Equal(t, "report", events[len(events)-1].Type)
	})

	t.Run("export", func(t *testing.T) {
		resp, err := http.Post(service.URL+"/api/v1/audit/export", "application/json", strings.NewReader(auditBody(site.URL)))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, report.ContentType, resp.Header.Get("Content-Type"))
	})

	t.Run("invalid input", func(t *testing.T) {
		resp, err := http.Post(service.URL+"/api/v1/audit", "application/json", strings.NewReader(`{"urls":["ftp://example.com"]}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestIntegration_ConcurrentAudits(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	site := startSite(t)
	service := startService(t)

	const workers = 5
	var wg sync.WaitGroup
	ids := make([]string, workers)
	codes := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(service.URL+"/api/v1/audit", "application/json", strings.NewReader(auditBody(site.URL)))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			codes[i] = resp.StatusCode

			var result models.AuditReport
			if json.NewDecoder(resp.Body).Decode(&result) == nil {
				ids[i] = result.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < workers; i++ {
		assert.Equal(t, http.StatusOK, codes[i])
		require.NotEmpty(t, ids[i])
		assert.False(t, seen[ids[i]], "duplicate audit id")
		seen[ids[i]] = true
	}
}
