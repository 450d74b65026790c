package fetch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"

	"github.com/Sriram-PR/index-now/pkg/utils"
)

// RobotsURL returns the robots.txt location for the scheme and host of siteURL.
// A bare host name is treated as https.
func RobotsURL(siteURL string) (string, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", utils.ErrParsing, siteURL, err)
	}
	if u.Host == "" {
		// "example.com" parses as a path
		u, err = url.Parse("https://" + siteURL)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("%w: no host in %q", utils.ErrParsing, siteURL)
		}
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String(), nil
}

// SitemapDirectives fetches robots.txt for the site and returns its Sitemap: entries in file order.
// A missing robots.txt (4xx) yields no sitemaps and no error. A 5xx response is an error.
func (f *Fetcher) SitemapDirectives(ctx context.Context, siteURL string) ([]string, error) {
	robotsURL, err := RobotsURL(siteURL)
	if err != nil {
		return nil, err
	}
	log := f.log.WithField("robots_url", robotsURL)

	status, body, err := f.Get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	if status >= 500 {
		return nil, statusError(status)
	}

	data, err := robotstxt.FromStatusAndBytes(status, body)
	if err != nil {
		return nil, fmt.Errorf("%w: robots.txt: %w", utils.ErrParsing, err)
	}

	sitemaps := make([]string, 0, len(data.Sitemaps))
	sitemaps = append(sitemaps, data.Sitemaps...)
	log.WithFields(logrus.Fields{"status_code": status, "sitemaps": len(sitemaps)}).Info("Read robots.txt")
	return sitemaps, nil
}
