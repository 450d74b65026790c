package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Fetcher performs single-attempt GET requests for sitemaps and robots.txt
type Fetcher struct {
	client      *http.Client
	cfg         *config.AppConfig
	rateLimiter *RateLimiter
	log         *logrus.Entry
}

// NewFetcher creates a Fetcher. cfg supplies the user agent, the per-host delay and the body size cap
func NewFetcher(client *http.Client, cfg *config.AppConfig, log logrus.FieldLogger) *Fetcher {
	entry := log.WithField("component", "fetcher")
	return &Fetcher{
		client:      client,
		cfg:         cfg,
		rateLimiter: NewRateLimiter(entry),
		log:         entry,
	}
}

// FetchSitemap downloads the sitemap at location and returns its decoded body.
// Gzip bodies are detected by the gzip magic bytes and decompressed, whatever the location's suffix.
func (f *Fetcher) FetchSitemap(ctx context.Context, location string) ([]byte, error) {
	status, body, err := f.Get(ctx, location)
	if err != nil {
		return nil, err
	}
	if err := statusError(status); err != nil {
		f.log.WithFields(logrus.Fields{"sitemap_url": location, "status_code": status}).Warn("Sitemap request failed")
		return nil, err
	}

	if isGzipped(body) {
		body, err = f.gunzip(body)
		if err != nil {
			return nil, err
		}
	}
	f.log.WithFields(logrus.Fields{"sitemap_url": location, "bytes": len(body)}).Debug("Fetched sitemap")
	return body, nil
}

// Get performs one GET request and returns the status code and the body, capped at the configured size.
// Non-2xx statuses are not errors here; callers classify them.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (int, []byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s: %w", utils.ErrParsing, rawURL, err)
	}

	if err := f.rateLimiter.ApplyDelay(ctx, parsed.Host, f.cfg.DelayPerHost); err != nil {
		return 0, nil, err
	}
	defer f.rateLimiter.UpdateLastRequestTime(parsed.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", utils.ErrRequestCreation, err)
	}
	userAgent := f.cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, err
		}
		f.log.WithField("url", rawURL).Debugf("Network error: %v", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := readCapped(resp.Body, f.maxBytes())
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func (f *Fetcher) maxBytes() int64 {
	if f.cfg.MaxSitemapBytes > 0 {
		return f.cfg.MaxSitemapBytes
	}
	return config.DefaultMaxSitemapBytes
}

func (f *Fetcher) gunzip(body []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", utils.ErrResponseBodyRead, err)
	}
	defer zr.Close()
	return readCapped(zr, f.maxBytes())
}

// readCapped reads r fully, failing with ErrResponseTooLarge past limit bytes
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrResponseBodyRead, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", utils.ErrResponseTooLarge, limit)
	}
	return body, nil
}

// isGzipped checks the magic bytes only; .xml.gz locations may be served already decompressed
func isGzipped(body []byte) bool {
	return bytes.HasPrefix(body, gzipMagic)
}

// statusError classifies a non-2xx status into the HTTP sentinel errors
func statusError(status int) error {
	text := http.StatusText(status)
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 500:
		return fmt.Errorf("%w: status %d %s", utils.ErrServerHTTPError, status, text)
	case status >= 400:
		return fmt.Errorf("%w: status %d %s", utils.ErrClientHTTPError, status, text)
	default:
		return fmt.Errorf("%w: status %d %s", utils.ErrOtherHTTPError, status, text)
	}
}
