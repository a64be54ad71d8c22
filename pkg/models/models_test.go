package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatus_Severity(t *testing.T) {
	assert.Greater(t, StatusFail.Severity(), StatusWarning.Severity())
	assert.Greater(t, StatusWarning.Severity(), StatusPass.Severity())
	assert.Greater(t, StatusPass.Severity(), StatusInfo.Severity())
	assert.Equal(t, 0, CheckStatus("unknown").Severity())
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
}

func TestCategory_DisplayName(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{CategoryLocalSEO, "Local SEO"},
		{CategoryEEAT, "E-E-A-T"},
		{CategoryTechnicalSEO, "Technical SEO"},
		{Category("custom"), "custom"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.DisplayName())
		})
	}

	for _, c := range AllCategories {
		assert.NotEqual(t, string(c), c.DisplayName(), "category %s has no display name", c)
	}
}

func TestPageType_IsListing(t *testing.T) {
	listing := map[PageType]bool{PageTypeCategory: true, PageTypeTag: true, PageTypeArchive: true}

	for _, pt := range AllPageTypes {
		assert.Equal(t, listing[pt], pt.IsListing(), string(pt))
	}
}

func TestFetchedPage_Header(t *testing.T) {
	p := &FetchedPage{Headers: map[string]string{"content-encoding": "gzip"}}

	assert.Equal(t, "gzip", p.Header("Content-Encoding"))
	assert.Empty(t, p.Header("X-Missing"))
	assert.Empty(t, (&FetchedPage{}).Header("content-type"))
}

func TestAuditRequest_WireFormat(t *testing.T) {
	body := `{
		"urls": ["https://example.com/"],
		"crawl_hints": {
			"pages": [{"url": "https://example.com/", "title": "Home"}],
			"url_groups": {"core": ["https://example.com/"], "blog": ["https://example.com/blog/a"]},
			"top_linked_pages": [{"url": "https://example.com/", "link_count": 7}]
		}
	}`

	var req AuditRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.CrawlHints)
	assert.Equal(t, "Home", req.CrawlHints.Pages[0].Title)
	assert.Equal(t, []string{"https://example.com/blog/a"}, req.CrawlHints.URLGroups.Blog)
	assert.Equal(t, 7, req.CrawlHints.TopLinkedPages[0].LinkCount)
}

func TestCategoryResult_EmptyChecksEncodeAsArray(t *testing.T) {
	data, err := json.Marshal(CategoryResult{Category: CategorySocial, Grade: "F", Checks: []Check{}})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"checks":[]`)
	assert.Contains(t, string(data), `"attempted":false`)
	assert.NotContains(t, string(data), "source_pages")
}
