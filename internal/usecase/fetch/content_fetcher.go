// Package fetch defines the port used to download article text for summarization.
package fetch

import (
	"context"
	"errors"
)

// ContentFetcher downloads a web page and returns its readable article text.
//
// Implementations must reject URLs that resolve to private addresses, bound the
// response size and validate every redirect target.
type ContentFetcher interface {
	// FetchContent returns the plain-text body of the article at url.
	FetchContent(ctx context.Context, url string) (string, error)
}

// Sentinel errors for content fetching operations.
var (
	// ErrInvalidURL indicates the URL is malformed or uses a scheme other than http/https.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a loopback, private or link-local address.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrUpstreamStatus indicates the server answered with a non-200 status.
	ErrUpstreamStatus = errors.New("unexpected upstream status")

	// ErrEmptyContent indicates neither readability nor the paragraph fallback found text.
	ErrEmptyContent = errors.New("no readable content found")
)
