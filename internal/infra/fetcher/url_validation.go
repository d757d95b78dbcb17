// Package fetcher downloads web pages and extracts their article text.
package fetcher

import (
	"fmt"
	"net"
	"net/url"

	"github.com/gianpd/summarizerAI/internal/usecase/fetch"
)

// lookupIP is replaced in tests.
var lookupIP = net.LookupIP

// validateURL rejects non-http(s) URLs and, when denyPrivateIPs is set, hosts
// that resolve to loopback, private or link-local addresses.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", fetch.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", fetch.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", fetch.ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	ips := []net.IP{net.ParseIP(hostname)}
	if ips[0] == nil {
		ips, err = lookupIP(hostname)
		if err != nil {
			return fmt.Errorf("%w: DNS lookup failed for %s: %v", fetch.ErrInvalidURL, hostname, err)
		}
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", fetch.ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
