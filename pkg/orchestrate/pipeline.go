package orchestrate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/filter"
	"github.com/Sriram-PR/index-now/pkg/models"
	"github.com/Sriram-PR/index-now/pkg/sitemap"
)

// Pipeline status codes returned without calling the IndexNow API
const (
	StatusNoSitemapFetched = http.StatusNotFound            // Every sitemap location failed
	StatusNoURLsInSitemaps = http.StatusUnprocessableEntity // Sitemaps were fetched but held no URLs
	StatusNothingToSubmit  = http.StatusNoContent           // Filtering left no URLs
)

// Submitter posts URLs to an IndexNow endpoint, see indexnow.Client
type Submitter interface {
	SubmitURLs(ctx context.Context, auth models.Authentication, urls []string, endpoint string) (int, error)
}

// SitemapRequest describes one sitemap submission
type SitemapRequest struct {
	Auth         models.Authentication
	Locations    []string
	Filter       filter.SitemapFilter
	Endpoint     string // Search engine name or custom URL; empty selects the default
	FollowNested bool
}

// Outcome summarises a sitemap submission
type Outcome struct {
	Status    int      // IndexNow response status, or one of the pipeline status codes
	Found     int      // URLs collected before filtering
	Submitted int      // URLs sent to the endpoint
	Failed    []string // Sitemap locations that could not be fetched
}

// Pipeline collects sitemap URLs, filters them and submits the rest
type Pipeline struct {
	fetcher   sitemap.ContentFetcher
	submitter Submitter
	maxDepth  int
	log       *logrus.Entry
}

// NewPipeline creates a Pipeline. maxDepth bounds nested sitemap expansion, <= 0 selects the default
func NewPipeline(fetcher sitemap.ContentFetcher, submitter Submitter, maxDepth int, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		submitter: submitter,
		maxDepth:  maxDepth,
		log:       log.WithField("component", "pipeline"),
	}
}

// CollectURLs fetches the sitemaps and returns the filtered URLs without submitting them
func (p *Pipeline) CollectURLs(ctx context.Context, locations []string, f filter.SitemapFilter, followNested bool) ([]string, sitemap.Collection, error) {
	collector := sitemap.NewCollector(p.fetcher, p.maxDepth, followNested, p.log)
	collection, err := collector.Collect(ctx, locations)
	if err != nil {
		return nil, collection, err
	}
	return filter.FilterURLs(collection.Records, f, p.log), collection, nil
}

// SubmitSitemap submits the URLs of a single sitemap, nested sitemaps included
func (p *Pipeline) SubmitSitemap(ctx context.Context, auth models.Authentication, location string, f filter.SitemapFilter, endpoint string) (Outcome, error) {
	return p.SubmitSitemaps(ctx, SitemapRequest{
		Auth:         auth,
		Locations:    []string{location},
		Filter:       f,
		Endpoint:     endpoint,
		FollowNested: true,
	})
}

// SubmitSitemaps collects, filters and submits the URLs of every sitemap in the request.
// The IndexNow API is only called when URLs are left after filtering; otherwise Outcome.Status
// is StatusNoSitemapFetched, StatusNoURLsInSitemaps or StatusNothingToSubmit.
// Invalid credentials and filters are returned as errors before any request is made.
func (p *Pipeline) SubmitSitemaps(ctx context.Context, req SitemapRequest) (Outcome, error) {
	if err := req.Auth.Validate(); err != nil {
		return Outcome{}, err
	}
	if err := req.Filter.Validate(); err != nil {
		return Outcome{}, err
	}
	if len(req.Locations) == 0 {
		return Outcome{}, fmt.Errorf("no sitemap locations given for host %s", req.Auth.Host)
	}
	runLog := p.log.WithField("host", req.Auth.Host)

	urls, collection, err := p.CollectURLs(ctx, req.Locations, req.Filter, req.FollowNested)
	outcome := Outcome{Found: len(collection.Records), Failed: failedLocations(req.Locations, collection)}
	if err != nil {
		return outcome, err
	}

	switch {
	case collection.AllFailed():
		runLog.Errorf("No URLs found. Could not fetch any of the %d sitemap(s)", len(req.Locations))
		outcome.Status = StatusNoSitemapFetched
		return outcome, nil
	case len(collection.Records) == 0:
		runLog.Errorf("No URLs found in sitemap(s). Please check the sitemap location(s): %v", req.Locations)
		outcome.Status = StatusNoURLsInSitemaps
		return outcome, nil
	case len(urls) == 0:
		runLog.Warnf("No URLs left after filtering (%s). Nothing submitted", req.Filter)
		outcome.Status = StatusNothingToSubmit
		return outcome, nil
	}

	if !req.Filter.IsEmpty() {
		runLog.Infof("%d of %d URL(s) left after filtering", len(urls), len(collection.Records))
	}
	outcome.Submitted = len(urls)
	outcome.Status, err = p.submitter.SubmitURLs(ctx, req.Auth, urls, req.Endpoint)
	return outcome, err
}

// failedLocations lists failed locations in request order
func failedLocations(locations []string, collection sitemap.Collection) []string {
	failed := []string{}
	for _, location := range locations {
		if _, ok := collection.Failed[location]; ok {
			failed = append(failed, location)
		}
	}
	return failed
}
