package config

import (
	"time"

	"github.com/Sriram-PR/index-now/pkg/models"
)

// SiteConfig holds configuration for one site whose URLs are submitted
type SiteConfig struct {
	Host                 string       `yaml:"host"`
	APIKey               string       `yaml:"api_key"`
	APIKeyLocation       string       `yaml:"api_key_location,omitempty"`
	SitemapLocations     []string     `yaml:"sitemap_locations,omitempty"`
	DiscoverSitemaps     bool         `yaml:"discover_sitemaps,omitempty"`      // Also read Sitemap: lines from robots.txt
	FollowNestedSitemaps *bool        `yaml:"follow_nested_sitemaps,omitempty"` // nil = follow
	Endpoint             string       `yaml:"endpoint,omitempty"`               // Overrides AppConfig.Endpoint
	Filter               FilterConfig `yaml:"filter,omitempty"`
}

// FilterConfig is the YAML form of filter.SitemapFilter
// Omitted keys disable the matching filter stage
type FilterConfig struct {
	Contains        *string `yaml:"contains,omitempty"`
	Excludes        *string `yaml:"excludes,omitempty"`
	Skip            *int    `yaml:"skip,omitempty"`
	Take            *int    `yaml:"take,omitempty"`
	ChangeFrequency *string `yaml:"change_frequency,omitempty"`
	DateRange       *string `yaml:"date_range,omitempty"` // e.g. "days-ago:7", see filter.ParseDateRange
}

// AppConfig holds the global application configuration
type AppConfig struct {
	UserAgent          string                `yaml:"user_agent"`
	DelayPerHost       time.Duration         `yaml:"delay_per_host,omitempty"`
	MaxSitemapDepth    int                   `yaml:"max_sitemap_depth,omitempty"`
	MaxSitemapBytes    int64                 `yaml:"max_sitemap_bytes,omitempty"`
	Endpoint           string                `yaml:"endpoint,omitempty"` // Search engine name or custom URL
	HTTPClientSettings HTTPClientConfig      `yaml:"http_client_settings,omitempty"`
	Sites              map[string]SiteConfig `yaml:"sites"`
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout               time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout
	MaxIdleConns          int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout,omitempty"` // Timeout for 100-continue
	ForceAttemptHTTP2     *bool         `yaml:"force_attempt_http2,omitempty"`     // nil=default, true=force, false=disable
	DialerTimeout         time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive       time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// Authentication returns the IndexNow credentials of the site
func (c SiteConfig) Authentication() models.Authentication {
	return models.Authentication{
		Host:           c.Host,
		APIKey:         c.APIKey,
		APIKeyLocation: c.APIKeyLocation,
	}
}

// GetEffectiveEndpoint determines the endpoint a site submits to
// Site config (if non-empty) overrides global
func GetEffectiveEndpoint(siteCfg SiteConfig, appCfg AppConfig) string {
	if siteCfg.Endpoint != "" {
		return siteCfg.Endpoint
	}
	return appCfg.Endpoint
}

// GetEffectiveFollowNested determines whether sitemap index documents are expanded for a site
func GetEffectiveFollowNested(siteCfg SiteConfig) bool {
	if siteCfg.FollowNestedSitemaps != nil {
		return *siteCfg.FollowNestedSitemaps
	}
	return true
}
