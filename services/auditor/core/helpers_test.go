package core

import (
	"strings"
	"testing"

	"github.com/RuvinSL/seo-auditor/pkg/models"
	"github.com/stretchr/testify/require"
)

func fetched(url, body string) *models.FetchedPage {
	return &models.FetchedPage{
		URL:                url,
		HTML:               body,
		Headers:            map[string]string{"content-type": "text/html; charset=utf-8"},
		ResponseTimeMs:     120,
		StatusCode:         200,
		ContentLengthBytes: int64(len(body)),
		IsHTTPS:            strings.HasPrefix(url, "https://"),
	}
}

func newTestPage(t *testing.T, url, body string, pageType models.PageType) *Page {
	t.Helper()
	p, err := NewPage(fetched(url, body), pageType)
	require.NoError(t, err)
	return p
}

func findCheck(t *testing.T, checks []models.Check, id string) models.Check {
	t.Helper()
	for _, c := range checks {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("check %q not found", id)
	return models.Check{}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("content ", n))
}

const wellFormedPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Expert Plumbing Services in Springfield Today</title>
  <meta name="description" content="Licensed plumbers in Springfield offering emergency repairs, drain cleaning and water heater installation with upfront pricing and friendly service.">
  <meta name="author" content="Jane Doe">
  <meta property="og:title" content="Expert Plumbing">
  <meta property="og:description" content="Licensed plumbers">
  <meta property="og:image" content="https://example.com/og.png">
  <meta name="twitter:card" content="summary_large_image">
  <link rel="canonical" href="https://example.com/">
  <link rel="icon" href="/favicon.ico">
  <link rel="preconnect" href="https://fonts.example.com">
  <script type="application/ld+json">{"@context":"https://schema.org","@type":"Plumber","name":"Springfield Plumbing","address":{"@type":"PostalAddress","streetAddress":"12 Main Street"}}</script>
  <script src="/app.js" defer></script>
</head>
<body>
  <header><nav><a href="/">Home</a><a href="/about">About us</a><a href="/contact">Contact</a></nav></header>
  <main>
    <h1>Expert Plumbing Services</h1>
    <h2>Emergency repairs</h2>
    <p>Certified and insured plumbers with 20 years of experience.</p>
    <h3>Drain cleaning</h3>
    <img src="/a.png" alt="Van" loading="lazy">
    <a href="/services/drains">Drains</a><a href="/services/heaters">Heaters</a>
    <a href="/services/leaks">Leaks</a><a href="/blog/tips">Tips</a>
    <a href="/blog/winter">Winter</a><a href="/reviews">Reviews</a>
    <a href="/areas">Areas</a>
    <a href="tel:+15551234567">Call (555) 123-4567</a>
    <iframe src="https://www.google.com/maps/embed?pb=abc"></iframe>
  </main>
  <footer>
    <a href="https://facebook.com/plumb">Facebook</a>
    <a href="https://www.instagram.com/plumb">Instagram</a>
    <a href="https://www.linkedin.com/company/plumb">LinkedIn</a>
  </footer>
</body>
</html>`
