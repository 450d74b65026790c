package sitemap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/filter"
	"github.com/Sriram-PR/index-now/pkg/models"
	"github.com/Sriram-PR/index-now/pkg/parse"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// Collection is the outcome of collecting URLs from one or more sitemap locations
type Collection struct {
	Records []models.SitemapURL
	Fetched int              // Locations whose content was retrieved
	Failed  map[string]error // Locations that could not be retrieved, by location
}

// AllFailed returns true if no location could be fetched
func (c Collection) AllFailed() bool {
	return c.Fetched == 0
}

// Collector gathers URL records from several sitemap locations, one after another
type Collector struct {
	fetcher      ContentFetcher
	resolver     *Resolver
	followNested bool
	log          *logrus.Entry
}

// NewCollector creates a Collector. With followNested unset only each location's own <url> entries are used
func NewCollector(fetcher ContentFetcher, maxDepth int, followNested bool, log logrus.FieldLogger) *Collector {
	return &Collector{
		fetcher:      fetcher,
		resolver:     NewResolver(fetcher, maxDepth, log),
		followNested: followNested,
		log:          log.WithField("component", "sitemap_collector"),
	}
}

// Collect fetches every location in order and merges the results
// A single location keeps its document order; several locations are merged with filter.MergeRecords,
// which drops duplicate locations and sorts the union
// Failed locations are logged and recorded in the Collection; only context cancellation is returned as an error
func (c *Collector) Collect(ctx context.Context, locations []string) (Collection, error) {
	result := Collection{
		Records: []models.SitemapURL{},
		Failed:  make(map[string]error),
	}

	for _, location := range locations {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("sitemap collection cancelled: %w", err)
		}
		locLog := c.log.WithField("sitemap_url", location)

		records, err := c.collectOne(ctx, location)
		if err != nil {
			if ctx.Err() != nil {
				return result, fmt.Errorf("sitemap collection cancelled: %w", ctx.Err())
			}
			locLog.WithFields(logrus.Fields{
				"error":          err,
				"error_category": utils.CategorizeError(err),
			}).Error("Failed to collect sitemap")
			result.Failed[location] = err
			continue
		}
		result.Fetched++
		locLog.Infof("Found %d URL(s) in sitemap", len(records))

		if len(locations) == 1 {
			result.Records = records
		} else {
			result.Records = filter.MergeRecords(result.Records, records)
		}
	}

	c.log.Infof("Found %d URL(s) in total from %d of %d sitemap(s)", len(result.Records), result.Fetched, len(locations))
	return result, nil
}

func (c *Collector) collectOne(ctx context.Context, location string) ([]models.SitemapURL, error) {
	if c.followNested {
		return c.resolver.ResolveAll(ctx, location)
	}
	content, err := c.fetcher.FetchSitemap(ctx, location)
	if err != nil {
		return nil, err
	}
	return parse.URLs(content, c.log.WithField("sitemap_url", location)), nil
}
