package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Sriram-PR/index-now/pkg/indexnow"
	"github.com/Sriram-PR/index-now/pkg/parse"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

const (
	DefaultUserAgent       = "index-now/1.0 (+https://github.com/Sriram-PR/index-now)"
	DefaultMaxSitemapDepth = 10
	DefaultMaxSitemapBytes = 50 << 20 // sitemaps.org limit for an uncompressed sitemap
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// UserAgent
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}

	// DelayPerHost
	if c.DelayPerHost < 0 {
		warnings = append(warnings, "delay_per_host cannot be negative, disabling delay")
		c.DelayPerHost = 0
	}

	// MaxSitemapDepth
	if c.MaxSitemapDepth < 0 {
		warnings = append(warnings, fmt.Sprintf("max_sitemap_depth cannot be negative, defaulting to %d", DefaultMaxSitemapDepth))
	}
	if c.MaxSitemapDepth <= 0 {
		c.MaxSitemapDepth = DefaultMaxSitemapDepth
	}

	// MaxSitemapBytes
	if c.MaxSitemapBytes < 0 {
		warnings = append(warnings, "max_sitemap_bytes cannot be negative, defaulting to 50 MiB")
	}
	if c.MaxSitemapBytes <= 0 {
		c.MaxSitemapBytes = DefaultMaxSitemapBytes
	}

	// Endpoint
	if _, err := indexnow.ResolveEndpoint(c.Endpoint); err != nil {
		return warnings, fmt.Errorf("%w: endpoint: %v", utils.ErrConfigValidation, err)
	}

	// HTTPClientSettings defaults
	c.validateHTTPClientSettings()

	return warnings, nil
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.Timeout <= 0 {
		h.Timeout = 45 * time.Second
	}
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.ExpectContinueTimeout <= 0 {
		h.ExpectContinueTimeout = 1 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}

// Validate checks SiteConfig fields and applies defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place (host and sitemap location normalization).
func (c *SiteConfig) Validate() (warnings []string, err error) {
	c.Host = strings.TrimSpace(c.Host)
	if c.Host == "" {
		return nil, fmt.Errorf("%w: site needs host", utils.ErrConfigValidation)
	}

	// Credentials
	if err := c.Authentication().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrConfigValidation, err)
	}
	if c.APIKeyLocation == "" {
		warnings = append(warnings, fmt.Sprintf(
			"api_key_location is empty; search engines will look for the key at %s",
			indexnow.KeyFileURL(c.Host, "<api_key>")))
	}

	// Sitemap locations
	if len(c.SitemapLocations) == 0 && !c.DiscoverSitemaps {
		defaultLocation := "https://" + c.Host + "/sitemap.xml"
		warnings = append(warnings, fmt.Sprintf("no sitemap_locations and discover_sitemaps disabled, defaulting to %s", defaultLocation))
		c.SitemapLocations = []string{defaultLocation}
	}
	for i, location := range c.SitemapLocations {
		if _, _, err := parse.ParseAndNormalize(location); err != nil {
			return nil, fmt.Errorf("%w: sitemap_locations[%d]: %v", utils.ErrConfigValidation, i, err)
		}
		c.SitemapLocations[i] = strings.TrimSpace(location)
	}

	// Endpoint override
	if c.Endpoint != "" {
		if _, err := indexnow.ResolveEndpoint(c.Endpoint); err != nil {
			return nil, fmt.Errorf("%w: endpoint: %v", utils.ErrConfigValidation, err)
		}
	}

	// Filter
	if _, err := c.Filter.SitemapFilter(); err != nil {
		return nil, utils.WrapErrorf(err, "filter")
	}

	return warnings, nil
}

// ValidateSites validates every site, prefixing warnings with the site key
// The first invalid site (in key order) is returned as a fatal error
func (c *AppConfig) ValidateSites() (warnings []string, err error) {
	if len(c.Sites) == 0 {
		return nil, fmt.Errorf("%w: no sites configured", utils.ErrConfigValidation)
	}
	for _, key := range c.SiteKeys() {
		site := c.Sites[key]
		siteWarnings, siteErr := site.Validate()
		for _, w := range siteWarnings {
			warnings = append(warnings, fmt.Sprintf("site '%s': %s", key, w))
		}
		if siteErr != nil {
			return warnings, fmt.Errorf("site '%s': %w", key, siteErr)
		}
		c.Sites[key] = site
	}
	return warnings, nil
}

// SiteKeys returns the configured site keys in sorted order
func (c *AppConfig) SiteKeys() []string {
	keys := make([]string, 0, len(c.Sites))
	for key := range c.Sites {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
