package entity

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// maxURLLength bounds stored URLs.
	maxURLLength = 2048

	// MaxTextLength bounds text submitted for direct summarization.
	MaxTextLength = 200_000
)

// lookupIP is replaced in tests to avoid real DNS.
var lookupIP = net.LookupIP

// ValidateURL checks that rawURL is an absolute http(s) URL of bounded
// length whose host does not resolve to a private or loopback address.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("malformed URL: %v", err)}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	host := parsedURL.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		if isPrivateIP(ip) {
			return &ValidationError{Field: "url", Message: "url cannot point to private network"}
		}
		return nil
	}
	ips, err := lookupIP(host)
	if err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return &ValidationError{Field: "url", Message: "url cannot point to private network"}
			}
		}
	}
	return nil
}

// ValidateText checks text submitted for summarization.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "text is required"}
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("text must not exceed %d characters", MaxTextLength),
		}
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsPrivate() || ip.IsUnspecified()
}
