package orchestrate

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/config"
	"github.com/Sriram-PR/index-now/pkg/filter"
	"github.com/Sriram-PR/index-now/pkg/indexnow"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// Discoverer finds sitemap locations announced in a site's robots.txt, see fetch.Fetcher
type Discoverer interface {
	SitemapDirectives(ctx context.Context, siteURL string) ([]string, error)
}

// SiteResult contains the result of submitting a single site
type SiteResult struct {
	SiteKey  string
	Success  bool
	Error    error
	Outcome  Outcome
	Duration time.Duration
}

// Runner submits configured sites one after another
type Runner struct {
	appCfg     *config.AppConfig
	pipeline   *Pipeline
	discoverer Discoverer
	log        *logrus.Entry
}

// NewRunner creates a Runner. appCfg must have been validated with ValidateSites
func NewRunner(appCfg *config.AppConfig, pipeline *Pipeline, discoverer Discoverer, log logrus.FieldLogger) *Runner {
	return &Runner{
		appCfg:     appCfg,
		pipeline:   pipeline,
		discoverer: discoverer,
		log:        log.WithField("component", "runner"),
	}
}

// Run submits every site in siteKeys in order and logs a summary.
// A cancelled context marks the remaining sites as failed without contacting them.
func (r *Runner) Run(ctx context.Context, siteKeys []string) []SiteResult {
	startTime := time.Now()
	r.log.Infof("Submitting %d site(s): %v", len(siteKeys), siteKeys)

	results := make([]SiteResult, 0, len(siteKeys))
	for _, key := range siteKeys {
		if err := ctx.Err(); err != nil {
			results = append(results, SiteResult{SiteKey: key, Error: err})
			continue
		}
		results = append(results, r.runSite(ctx, key))
	}

	r.logSummary(results, time.Since(startTime))
	return results
}

func (r *Runner) runSite(ctx context.Context, siteKey string) SiteResult {
	startTime := time.Now()
	result := SiteResult{SiteKey: siteKey}
	siteLog := r.log.WithField("site", siteKey)

	req, err := r.SiteRequest(ctx, siteKey)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(startTime)
		siteLog.Errorf("Cannot submit site: %v", err)
		return result
	}

	siteLog.Infof("Submitting %d sitemap(s) with filter: %s", len(req.Locations), req.Filter)
	result.Outcome, result.Error = r.pipeline.SubmitSitemaps(ctx, req)
	result.Success = result.Error == nil && indexnow.IsSuccess(result.Outcome.Status)
	result.Duration = time.Since(startTime)

	if result.Error != nil {
		siteLog.WithField("error_category", utils.CategorizeError(result.Error)).Errorf("Submission failed: %v", result.Error)
	}
	return result
}

// SiteRequest builds the sitemap submission for a configured site, including sitemaps discovered from robots.txt
func (r *Runner) SiteRequest(ctx context.Context, siteKey string) (SitemapRequest, error) {
	siteCfg, exists := r.appCfg.Sites[siteKey]
	if !exists {
		return SitemapRequest{}, fmt.Errorf("site '%s' not found in configuration", siteKey)
	}

	f, err := siteCfg.Filter.SitemapFilter()
	if err != nil {
		return SitemapRequest{}, utils.WrapErrorf(err, "site '%s' filter", siteKey)
	}

	locations, err := r.SiteLocations(ctx, siteCfg)
	if err != nil {
		return SitemapRequest{}, err
	}

	return SitemapRequest{
		Auth:         siteCfg.Authentication(),
		Locations:    locations,
		Filter:       f,
		Endpoint:     config.GetEffectiveEndpoint(siteCfg, *r.appCfg),
		FollowNested: config.GetEffectiveFollowNested(siteCfg),
	}, nil
}

// SiteLocations returns the configured sitemap locations of a site.
// With discover_sitemaps set, robots.txt Sitemap: entries are added and the union is returned sorted.
// A failed discovery is logged and the configured locations are used alone.
func (r *Runner) SiteLocations(ctx context.Context, siteCfg config.SiteConfig) ([]string, error) {
	locations := append([]string{}, siteCfg.SitemapLocations...)
	if siteCfg.DiscoverSitemaps && r.discoverer != nil {
		discovered, err := r.discoverer.SitemapDirectives(ctx, siteCfg.Host)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.log.WithFields(logrus.Fields{
				"host":           siteCfg.Host,
				"error_category": utils.CategorizeError(err),
			}).Warnf("Sitemap discovery from robots.txt failed: %v", err)
		} else {
			r.log.WithField("host", siteCfg.Host).Infof("Discovered %d sitemap(s) in robots.txt", len(discovered))
			locations = filter.MergeDeduped(locations, discovered)
		}
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: no sitemap locations for host %s", utils.ErrConfigValidation, siteCfg.Host)
	}
	return locations, nil
}

// logSummary logs a summary of all site results
func (r *Runner) logSummary(results []SiteResult, totalDuration time.Duration) {
	r.log.Info("============================================")
	r.log.Infof("Submission completed in %v", totalDuration)
	r.log.Info("Site Results:")

	var totalURLs int
	successCount := 0
	failCount := 0

	for _, res := range results {
		status := "SUCCESS"
		if !res.Success {
			status = "FAILED"
			failCount++
		} else {
			successCount++
		}
		totalURLs += res.Outcome.Submitted

		r.log.Infof("  %s: %s - %d of %d URL(s) submitted, status %d in %v",
			res.SiteKey, status, res.Outcome.Submitted, res.Outcome.Found, res.Outcome.Status, res.Duration)
		if res.Error != nil {
			r.log.Infof("    Error: %v", res.Error)
		}
	}

	r.log.Info("--------------------------------------------")
	r.log.Infof("Total: %d sites (%d success, %d failed), %d URL(s) submitted",
		len(results), successCount, failCount, totalURLs)
	r.log.Info("============================================")
}

// ValidateSiteKeys checks that all provided site keys exist in the config
func ValidateSiteKeys(appCfg *config.AppConfig, siteKeys []string) error {
	for _, key := range siteKeys {
		if _, exists := appCfg.Sites[key]; !exists {
			return fmt.Errorf("site '%s' not found. Available sites: %v", key, GetAllSiteKeys(appCfg))
		}
	}
	return nil
}

// GetAllSiteKeys returns all site keys from the config, sorted
func GetAllSiteKeys(appCfg *config.AppConfig) []string {
	return appCfg.SiteKeys()
}
