package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gianpd/summarizerAI/internal/resilience/circuitbreaker"
	"github.com/gianpd/summarizerAI/internal/usecase/fetch"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ReadabilityFetcher implements fetch.ContentFetcher with Mozilla's Readability
// algorithm (go-shiori/go-readability). When readability returns too little text
// the page's <p> elements are collected with goquery instead.
//
// Thread safety: ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ContentFetchConfig
}

// NewReadabilityFetcher creates a new ReadabilityFetcher with the given configuration.
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	fetcher := &ReadabilityFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ConfigFor(circuitbreaker.KindFetch, "content-fetch")),
		config:         config,
	}

	fetcher.client = &http.Client{
		Timeout: 2 * config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= fetcher.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", fetch.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), fetcher.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return fetcher
}

// Breaker exposes the fetcher's circuit breaker for health reporting.
func (f *ReadabilityFetcher) Breaker() *circuitbreaker.CircuitBreaker {
	return f.circuitBreaker
}

// FetchContent downloads urlStr and returns the article text.
//
// Errors:
//   - fetch.ErrInvalidURL, fetch.ErrPrivateIP: the URL was rejected before any request
//   - fetch.ErrTooManyRedirects, fetch.ErrBodyTooLarge, fetch.ErrTimeout
//   - fetch.ErrUpstreamStatus: non-200 response
//   - fetch.ErrEmptyContent: the page has no readable text
//   - gobreaker.ErrOpenState: too many recent failures
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	return circuitbreaker.Do(f.circuitBreaker, func() (string, error) {
		return f.doFetch(ctx, urlStr)
	})
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", fetch.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: request exceeded %v", fetch.ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", fetch.ErrUpstreamStatus, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			fetch.ErrBodyTooLarge, len(htmlBytes), f.config.MaxBodySize)
	}

	// The final URL may differ from urlStr after redirects.
	pageURL, _ := url.Parse(urlStr)
	if resp.Request != nil && resp.Request.URL != nil {
		pageURL = resp.Request.URL
	}

	text := f.extract(htmlBytes, pageURL)
	if text == "" {
		return "", fmt.Errorf("%w: %s", fetch.ErrEmptyContent, urlStr)
	}
	return text, nil
}

// extract runs readability and, when its text is shorter than MinContentLength,
// the paragraph extractor; the longer result is returned.
func (f *ReadabilityFetcher) extract(htmlBytes []byte, pageURL *url.URL) string {
	var text string
	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		slog.Debug("readability extraction failed",
			slog.Any("url", pageURL),
			slog.Any("error", err))
	} else {
		text = strings.TrimSpace(article.TextContent)
	}

	if len(text) >= f.config.MinContentLength {
		return text
	}

	paragraphs, err := extractParagraphs(htmlBytes)
	if err != nil {
		slog.Debug("paragraph extraction failed",
			slog.Any("url", pageURL),
			slog.Any("error", err))
		return text
	}
	if len(paragraphs) > len(text) {
		slog.Debug("using paragraph text instead of readability",
			slog.Any("url", pageURL),
			slog.Int("readability_length", len(text)),
			slog.Int("paragraph_length", len(paragraphs)))
		return paragraphs
	}
	return text
}

// extractParagraphs joins the trimmed text of every <p> element with a single space.
func extractParagraphs(htmlBytes []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " "), nil
}
