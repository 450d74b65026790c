package parse

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/Sriram-PR/index-now/pkg/utils"
)

// NormalizeURL standardizes a sitemap location so the same document is recognised under different spellings
// It lowercases the scheme and host, removes default ports (80 for http, 443 for https), turns an empty path into "/" and drops the fragment
// Query strings are kept: paginated sitemaps (sitemap.xml?page=2) are distinct documents
// Does not modify the input *url.URL
func NormalizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	normalized := *u

	normalized.Scheme = strings.ToLower(normalized.Scheme)
	normalized.Host = strings.ToLower(normalized.Host)

	host, port, err := net.SplitHostPort(normalized.Host)
	if err == nil {
		if (normalized.Scheme == "http" && port == "80") ||
			(normalized.Scheme == "https" && port == "443") {
			normalized.Host = host
		}
	}

	if normalized.Path == "" {
		normalized.Path = "/"
	}
	normalized.Fragment = ""
	normalized.RawFragment = ""

	return normalized.String()
}

// ParseAndNormalize parses an absolute http(s) URL and normalizes it using NormalizeURL
// Returns the normalized string, the parsed URL object, and any parse error
func ParseAndNormalize(urlStr string) (string, *url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid URL '%s': %v", utils.ErrParsing, urlStr, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", nil, fmt.Errorf("%w: unsupported URL scheme '%s' in '%s'", utils.ErrParsing, parsed.Scheme, urlStr)
	}
	if parsed.Host == "" {
		return "", nil, fmt.Errorf("%w: URL '%s' has no host", utils.ErrParsing, urlStr)
	}
	return NormalizeURL(parsed), parsed, nil
}
