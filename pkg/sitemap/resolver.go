package sitemap

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/index-now/pkg/models"
	"github.com/Sriram-PR/index-now/pkg/parse"
)

// DefaultMaxDepth bounds how many sitemap index levels are followed below the root document
const DefaultMaxDepth = 10

// ContentFetcher returns the raw (decompressed) bytes of a sitemap document
type ContentFetcher interface {
	FetchSitemap(ctx context.Context, location string) ([]byte, error)
}

// Resolver expands sitemap index documents into a flat list of URL records
type Resolver struct {
	fetcher  ContentFetcher
	maxDepth int
	log      *logrus.Entry
}

// NewResolver creates a Resolver. A maxDepth <= 0 selects DefaultMaxDepth
func NewResolver(fetcher ContentFetcher, maxDepth int, log logrus.FieldLogger) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{
		fetcher:  fetcher,
		maxDepth: maxDepth,
		log:      log.WithField("component", "sitemap_resolver"),
	}
}

// resolveRun holds the state of one ResolveAll/ResolveContent call
type resolveRun struct {
	visited map[string]bool // Normalized sitemap locations already expanded
	records []models.SitemapURL
}

// markVisited records a sitemap location and returns true if it was not seen before
func (run *resolveRun) markVisited(location string) bool {
	key := location
	if normalized, _, err := parse.ParseAndNormalize(location); err == nil {
		key = normalized
	}
	if run.visited[key] {
		return false
	}
	run.visited[key] = true
	return true
}

// ResolveAll fetches the sitemap at location and returns its URL records followed,
// depth-first in declaration order, by those of every nested sitemap it links to
// Fetch errors are returned as-is
func (r *Resolver) ResolveAll(ctx context.Context, location string) ([]models.SitemapURL, error) {
	run := &resolveRun{visited: make(map[string]bool), records: []models.SitemapURL{}}
	run.markVisited(location)

	content, err := r.fetcher.FetchSitemap(ctx, location)
	if err != nil {
		return nil, err
	}
	if err := r.expand(ctx, run, content, location, 0); err != nil {
		return nil, err
	}
	return run.records, nil
}

// ResolveContent is ResolveAll for a root document that has already been fetched
func (r *Resolver) ResolveContent(ctx context.Context, content []byte) ([]models.SitemapURL, error) {
	run := &resolveRun{visited: make(map[string]bool), records: []models.SitemapURL{}}
	if err := r.expand(ctx, run, content, "", 0); err != nil {
		return nil, err
	}
	return run.records, nil
}

// URLsOnly parses only the given document, ignoring any nested sitemap links
func (r *Resolver) URLsOnly(content []byte) []models.SitemapURL {
	return parse.URLs(content, r.log)
}

func (r *Resolver) expand(ctx context.Context, run *resolveRun, content []byte, location string, depth int) error {
	docLog := r.log
	if location != "" {
		docLog = docLog.WithField("sitemap_url", location)
	}

	doc := parse.ParseSitemap(content, docLog)
	run.records = append(run.records, doc.URLs...)
	if !doc.IsIndex() {
		docLog.Debugf("Parsed %d URL(s)", len(doc.URLs))
		return nil
	}
	docLog.Debugf("Parsed %d URL(s) and %d nested sitemap(s) at depth %d", len(doc.URLs), len(doc.NestedSitemaps), depth)

	for _, nested := range doc.NestedSitemaps {
		nestedLog := docLog.WithField("nested_sitemap", nested)

		if depth+1 > r.maxDepth {
			nestedLog.Warnf("Not following nested sitemap: maximum depth %d reached", r.maxDepth)
			continue
		}
		if !run.markVisited(nested) {
			nestedLog.Warn("Not following nested sitemap: already expanded in this run")
			continue
		}

		nestedContent, err := r.fetcher.FetchSitemap(ctx, nested)
		if err != nil {
			return err
		}
		if err := r.expand(ctx, run, nestedContent, nested, depth+1); err != nil {
			return err
		}
	}
	return nil
}
