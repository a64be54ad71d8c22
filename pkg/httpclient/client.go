package httpclient

import (
	"bufio"
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/RuvinSL/seo-auditor/pkg/errs"
	"github.com/RuvinSL/seo-auditor/pkg/interfaces"
	"github.com/RuvinSL/seo-auditor/pkg/models"
	"golang.org/x/net/html"
)

const (
	defaultUserAgent = "SEOAuditor/1.0"
	maxBodySize      = 10 * 1024 * 1024
)

// Client fetches pages over HTTP and implements interfaces.Fetcher
type Client struct {
	client    *http.Client
	logger    interfaces.Logger
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

// Option configures a Client
type Option func(*Client)

// WithMaxBodySize caps how many decoded body bytes are kept per page
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func New(timeout time.Duration, logger interfaces.Logger, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: timeout, // overall request deadline (includes headers + body)
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       60 * time.Second,
				TLSHandshakeTimeout:   5 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger:    logger,
		timeout:   timeout,
		userAgent: defaultUserAgent,
		maxBody:   maxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves one page. Non-2xx responses, timeouts and network
// failures are returned as *errs.AppError.
func (c *Client) Fetch(ctx context.Context, url string) (*models.FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.InvalidInput, "failed to create request", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	// Set explicitly so the transport leaves Content-Encoding visible.
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	c.logger.Debug("Fetching page", "url", url)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Page request failed",
			"url", url,
			"error", err,
			"duration", time.Since(start),
		)
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.AppError{
			Kind:           errs.UpstreamStatus,
			UpstreamStatus: resp.StatusCode,
			Message:        fmt.Sprintf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, errs.New(errs.ParsingFailed, "failed to decompress response", err)
	}
	defer reader.Close()

	body, err := io.ReadAll(io.LimitReader(reader, c.maxBody+1))
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	elapsed := time.Since(start)

	size := int64(len(body))
	truncated := size > c.maxBody
	if truncated {
		body = body[:c.maxBody]
		// the advertised length is only the decoded size for identity bodies
		if resp.ContentLength > size && !isEncoded(resp) {
			size = resp.ContentLength
		}
		c.logger.Warn("Response body truncated",
			"url", url,
			"limit_bytes", c.maxBody,
			"content_length", resp.ContentLength,
		)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	c.logger.Debug("Page fetched",
		"url", finalURL,
		"status_code", resp.StatusCode,
		"content_length", len(body),
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"duration", elapsed,
	)

	return &models.FetchedPage{
		URL:                finalURL,
		HTML:               string(body),
		Headers:            lowerHeaders(resp.Header),
		ResponseTimeMs:     elapsed.Milliseconds(),
		StatusCode:         resp.StatusCode,
		ContentLengthBytes: size,
		BodyTruncated:      truncated,
		IsHTTPS:            strings.HasPrefix(strings.ToLower(finalURL), "https://"),
		Headings:           CountHeadings(body),
	}, nil
}

func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		// servers send either zlib-wrapped or raw deflate under this name
		br := bufio.NewReader(resp.Body)
		if hasZlibHeader(br) {
			return zlib.NewReader(br)
		}
		return flate.NewReader(br), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

func hasZlibHeader(br *bufio.Reader) bool {
	h, err := br.Peek(2)
	if err != nil {
		return false
	}
	return h[0]&0x0f == 8 && h[0]>>4 <= 7 && (uint16(h[0])<<8|uint16(h[1]))%31 == 0
}

func isEncoded(resp *http.Response) bool {
	enc := strings.ToLower(resp.Header.Get("Content-Encoding"))
	return enc != "" && enc != "identity"
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return errs.New(errs.Canceled, "request canceled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errs.New(errs.Timeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.New(errs.Timeout, "request timed out", err)
	}
	return errs.New(errs.Unreachable, "request failed", err)
}

func lowerHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}

// CountHeadings counts h1-h6 start tags with the HTML tokenizer
func CountHeadings(body []byte) models.HeadingCount {
	var counts models.HeadingCount
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return counts
		case html.StartTagToken:
			name, _ := z.TagName()
			if len(name) != 2 || name[0] != 'h' {
				continue
			}
			switch name[1] {
			case '1':
				counts.H1++
			case '2':
				counts.H2++
			case '3':
				counts.H3++
			case '4':
				counts.H4++
			case '5':
				counts.H5++
			case '6':
				counts.H6++
			}
		}
	}
}

var _ interfaces.Fetcher = (*Client)(nil)
