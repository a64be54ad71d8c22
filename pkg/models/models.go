package models

import (
	"strings"
	"time"
)

// PageType is the classified role of a URL within a site
type PageType string

const (
	PageTypeHome     PageType = "home"
	PageTypeContact  PageType = "contact"
	PageTypeAbout    PageType = "about"
	PageTypeBlog     PageType = "blog"
	PageTypeProduct  PageType = "product"
	PageTypeService  PageType = "service"
	PageTypeCategory PageType = "category"
	PageTypeTag      PageType = "tag"
	PageTypeArchive  PageType = "archive"
	PageTypeLegal    PageType = "legal"
	PageTypeOther    PageType = "other"
)

// AllPageTypes lists every page type in declaration order
var AllPageTypes = []PageType{
	PageTypeHome, PageTypeContact, PageTypeAbout, PageTypeBlog, PageTypeProduct, PageTypeService,
	PageTypeCategory, PageTypeTag, PageTypeArchive, PageTypeLegal, PageTypeOther,
}

// IsListing reports whether the page is an index of other pages rather than content
func (p PageType) IsListing() bool {
	return p == PageTypeCategory || p == PageTypeTag || p == PageTypeArchive
}

// Category identifies one audit dimension
type Category string

const (
	CategoryLocalSEO     Category = "localSeo"
	CategorySEO          Category = "seo"
	CategoryContent      Category = "content"
	CategoryPerformance  Category = "performance"
	CategoryEEAT         Category = "eeat"
	CategorySocial       Category = "social"
	CategoryTechnology   Category = "technology"
	CategoryTechnicalSEO Category = "technicalSeo"
	CategoryLinks        Category = "links"
	CategoryUsability    Category = "usability"
)

// AllCategories lists the categories in report order
var AllCategories = []Category{
	CategoryLocalSEO, CategorySEO, CategoryContent, CategoryPerformance, CategoryEEAT,
	CategorySocial, CategoryTechnology, CategoryTechnicalSEO, CategoryLinks, CategoryUsability,
}

var categoryNames = map[Category]string{
	CategoryLocalSEO:     "Local SEO",
	CategorySEO:          "SEO",
	CategoryContent:      "Content",
	CategoryPerformance:  "Performance",
	CategoryEEAT:         "E-E-A-T",
	CategorySocial:       "Social",
	CategoryTechnology:   "Technology",
	CategoryTechnicalSEO: "Technical SEO",
	CategoryLinks:        "Links",
	CategoryUsability:    "Usability",
}

// DisplayName returns the human label for the category
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusWarning CheckStatus = "warning"
	StatusFail    CheckStatus = "fail"
	StatusInfo    CheckStatus = "info"
)

// Severity orders statuses from neutral to worst
func (s CheckStatus) Severity() int {
	switch s {
	case StatusFail:
		return 3
	case StatusWarning:
		return 2
	case StatusPass:
		return 1
	default:
		return 0
	}
}

// Check is a single weighted finding
type Check struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Status         CheckStatus    `json:"status"`
	Score          int            `json:"score"`
	Weight         int            `json:"weight"`
	Value          map[string]any `json:"value,omitempty"`
	Message        string         `json:"message"`
	Recommendation string         `json:"recommendation,omitempty"`
	SourcePages    []string       `json:"source_pages,omitempty"`
}

// CategoryResult is the outcome of one category for one page or across pages
type CategoryResult struct {
	Category    Category `json:"category"`
	Score       int      `json:"score"`
	Grade       string   `json:"grade"`
	Message     string   `json:"message"`
	Checks      []Check  `json:"checks"`
	SourcePages []string `json:"source_pages,omitempty"`

	// Attempted is false when no page was selected for the category.
	Attempted bool `json:"attempted"`
	// PageCount is the number of pages that contributed results.
	PageCount int `json:"page_count"`
}

// HeadingCount represents the count of each heading level
type HeadingCount struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
	H4 int `json:"h4"`
	H5 int `json:"h5"`
	H6 int `json:"h6"`
}

// FetchedPage is one retrieved document. Headers keys are lower-cased.
type FetchedPage struct {
	URL                string            `json:"url"`
	HTML               string            `json:"-"`
	Headers            map[string]string `json:"headers"`
	ResponseTimeMs     int64             `json:"response_time_ms"`
	StatusCode         int               `json:"status_code"`
	ContentLengthBytes int64             `json:"content_length_bytes"`
	BodyTruncated      bool              `json:"body_truncated"`
	IsHTTPS            bool              `json:"is_https"`
	Headings           HeadingCount      `json:"headings"`
}

// Header returns a response header by case-insensitive name
func (p *FetchedPage) Header(name string) string {
	if p.Headers == nil {
		return ""
	}
	return p.Headers[strings.ToLower(name)]
}

type PageClassification struct {
	URL   string   `json:"url"`
	Type  PageType `json:"type"`
	Title string   `json:"title,omitempty"`
}

// AuditMapping records which pages feed each category
type AuditMapping map[Category][]string

// CrawlHints is optional advisory input from a crawler
type CrawlHints struct {
	Pages          []CrawlPage  `json:"pages,omitempty"`
	URLGroups      *URLGroups   `json:"url_groups,omitempty"`
	TopLinkedPages []LinkedPage `json:"top_linked_pages,omitempty"`
}

type CrawlPage struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type URLGroups struct {
	Core     []string `json:"core,omitempty"`
	Blog     []string `json:"blog,omitempty"`
	Product  []string `json:"product,omitempty"`
	Category []string `json:"category,omitempty"`
	Other    []string `json:"other,omitempty"`
}

type LinkedPage struct {
	URL       string `json:"url"`
	LinkCount int    `json:"link_count"`
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank orders priorities, HIGH first
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Recommendation struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	CategoryName string   `json:"category_name"`
	Priority     Priority `json:"priority"`
	CheckID      string   `json:"check_id"`
	SourcePages  []string `json:"source_pages,omitempty"`
}

// CoreWebVitals holds lab metrics from an external page-speed service
type CoreWebVitals struct {
	URL        string    `json:"url"`
	Strategy   string    `json:"strategy"`
	Score      int       `json:"score"`
	LCP        float64   `json:"lcp_ms"`
	CLS        float64   `json:"cls"`
	INP        float64   `json:"inp_ms"`
	FCP        float64   `json:"fcp_ms"`
	TBT        float64   `json:"tbt_ms"`
	TTFB       float64   `json:"ttfb_ms"`
	SpeedIndex float64   `json:"speed_index_ms"`
	FetchedAt  time.Time `json:"fetched_at"`
}

type ReportStatus string

const (
	ReportComplete ReportStatus = "complete"
	ReportPartial  ReportStatus = "partial"
	ReportFailed   ReportStatus = "failed"
	ReportCanceled ReportStatus = "canceled"
)

// AuditReport is the result of one audit run
type AuditReport struct {
	ID                  string                      `json:"id"`
	Status              ReportStatus                `json:"status"`
	OverallScore        int                         `json:"overall_score"`
	OverallGrade        string                      `json:"overall_grade"`
	Categories          map[Category]CategoryResult `json:"categories"`
	Recommendations     []Recommendation            `json:"recommendations"`
	PageClassifications []PageClassification        `json:"page_classifications"`
	PagesAnalyzed       int                         `json:"pages_analyzed"`
	PagesSucceeded      int                         `json:"pages_succeeded"`
	PagesFailed         int                         `json:"pages_failed"`
	PagesSkipped        int                         `json:"pages_skipped"`
	PagesNotSelected    int                         `json:"pages_not_selected"`
	AuditMapping        AuditMapping                `json:"audit_mapping"`
	StartedAt           time.Time                   `json:"started_at"`
	CompletedAt         time.Time                   `json:"completed_at"`
}

// Progress is one progress event of an audit run
type Progress struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

// ProgressFunc receives progress events. Percent never decreases within a run.
type ProgressFunc func(Progress)

// AuditRequest is the body accepted by the audit endpoints
type AuditRequest struct {
	URLs       []string    `json:"urls"`
	CrawlHints *CrawlHints `json:"crawl_hints,omitempty"`
}

// StreamEvent is one line of the NDJSON audit stream
type StreamEvent struct {
	Type     string       `json:"type"`
	Progress *Progress    `json:"progress,omitempty"`
	Report   *AuditReport `json:"report,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
