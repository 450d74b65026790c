package sitemap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriram-PR/index-now/pkg/models"
	"github.com/Sriram-PR/index-now/pkg/utils"
)

// --- Mock types ---

// mockFetcher serves sitemap documents from memory and records every requested location
type mockFetcher struct {
	docs     map[string]string
	errs     map[string]error
	requests []string
}

func newMockFetcher(docs map[string]string) *mockFetcher {
	return &mockFetcher{docs: docs, errs: make(map[string]error)}
}

func (m *mockFetcher) FetchSitemap(ctx context.Context, location string) ([]byte, error) {
	m.requests = append(m.requests, location)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.errs[location]; ok {
		return nil, err
	}
	doc, ok := m.docs[location]
	if !ok {
		return nil, fmt.Errorf("%w: status 404", utils.ErrClientHTTPError)
	}
	return []byte(doc), nil
}

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func urlset(locs ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, loc := range locs {
		body += "<url><loc>" + loc + "</loc></url>"
	}
	return body + "</urlset>"
}

func sitemapIndex(links ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, link := range links {
		body += "<sitemap><loc>" + link + "</loc></sitemap>"
	}
	return body + "</sitemapindex>"
}

const (
	rootURL  = "https://example.com/sitemap.xml"
	postsURL = "https://example.com/sitemap-posts.xml"
	pagesURL = "https://example.com/sitemap-pages.xml"
)

func TestResolveAll_IndexWithTwoNestedSitemaps(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{
		rootURL:  sitemapIndex(postsURL, pagesURL),
		postsURL: urlset("https://example.com/posts/1", "https://example.com/posts/2"),
		pagesURL: urlset("https://example.com/about"),
	})
	resolver := NewResolver(fetcher, 0, testLogger())

	records, err := resolver.ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/posts/1",
		"https://example.com/posts/2",
		"https://example.com/about",
	}, models.Locations(records))
	assert.Equal(t, []string{rootURL, postsURL, pagesURL}, fetcher.requests)

	// The non-recursive entry point sees no <url> entries in an index document
	assert.Empty(t, resolver.URLsOnly([]byte(fetcher.docs[rootURL])))
}

func TestResolveAll_DepthFirstDeclarationOrder(t *testing.T) {
	deepURL := "https://example.com/sitemap-deep.xml"
	fetcher := newMockFetcher(map[string]string{
		rootURL:  sitemapIndex(postsURL, pagesURL),
		postsURL: sitemapIndex(deepURL),
		deepURL:  urlset("https://example.com/deep"),
		pagesURL: urlset("https://example.com/page"),
	})

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/deep", "https://example.com/page"}, models.Locations(records))
}

func TestResolveAll_MixedDocumentKeepsOwnURLsFirst(t *testing.T) {
	mixed := `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/own</loc></url>
  <sitemap><loc>` + pagesURL + `</loc></sitemap>
</urlset>`
	fetcher := newMockFetcher(map[string]string{
		rootURL:  mixed,
		pagesURL: urlset("https://example.com/nested"),
	})

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/own", "https://example.com/nested"}, models.Locations(records))
}

func TestResolveAll_PlainURLSet(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{
		rootURL: urlset("https://example.com/a", "https://example.com/b"),
	})

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []string{rootURL}, fetcher.requests)
}

func TestResolveAll_SelfReferenceExpandedOnce(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{
		rootURL: `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/a</loc></url>
  <sitemap><loc>https://EXAMPLE.com:443/sitemap.xml#again</loc></sitemap>
</urlset>`,
	})

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a"}, models.Locations(records))
	assert.Equal(t, []string{rootURL}, fetcher.requests)
}

func TestResolveAll_CycleBetweenIndexes(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{
		rootURL:  sitemapIndex(postsURL),
		postsURL: sitemapIndex(pagesURL),
		pagesURL: sitemapIndex(rootURL, postsURL),
	})

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, []string{rootURL, postsURL, pagesURL}, fetcher.requests)
}

func TestResolveAll_SharedLeafFetchedOnce(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{
		rootURL:  sitemapIndex(postsURL, pagesURL, postsURL),
		postsURL: urlset("https://example.com/posts/1"),
		pagesURL: urlset("https://example.com/about"),
	})

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Len(t, fetcher.requests, 3)
}

func TestResolveAll_MaxDepth(t *testing.T) {
	docs := make(map[string]string)
	for level := 0; level < 5; level++ {
		docs[fmt.Sprintf("https://example.com/level%d.xml", level)] = `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` +
			fmt.Sprintf("<url><loc>https://example.com/page%d</loc></url>", level) +
			fmt.Sprintf("<sitemap><loc>https://example.com/level%d.xml</loc></sitemap>", level+1) +
			"</urlset>"
	}
	fetcher := newMockFetcher(docs)

	records, err := NewResolver(fetcher, 2, testLogger()).ResolveAll(context.Background(), "https://example.com/level0.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/page0",
		"https://example.com/page1",
		"https://example.com/page2",
	}, models.Locations(records))
}

func TestResolveAll_FetchErrorPropagates(t *testing.T) {
	fetchErr := errors.New("connection reset")
	fetcher := newMockFetcher(map[string]string{
		rootURL:  sitemapIndex(postsURL, pagesURL),
		pagesURL: urlset("https://example.com/about"),
	})
	fetcher.errs[postsURL] = fetchErr

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	assert.Nil(t, records)
	assert.Same(t, fetchErr, err)

	_, err = NewResolver(newMockFetcher(nil), 0, testLogger()).ResolveAll(context.Background(), rootURL)
	assert.ErrorIs(t, err, utils.ErrClientHTTPError)
}

func TestResolveAll_MalformedNestedSitemapIsEmpty(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{
		rootURL:  sitemapIndex(postsURL, pagesURL),
		postsURL: "<html>not a sitemap",
		pagesURL: urlset("https://example.com/about"),
	})

	records, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(context.Background(), rootURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/about"}, models.Locations(records))
}

func TestResolveContent(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{
		postsURL: urlset("https://example.com/posts/1"),
		pagesURL: urlset("https://example.com/about"),
	})
	resolver := NewResolver(fetcher, 0, testLogger())

	records, err := resolver.ResolveContent(context.Background(), []byte(sitemapIndex(postsURL, pagesURL)))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/posts/1", "https://example.com/about"}, models.Locations(records))

	records, err = resolver.ResolveContent(context.Background(), []byte("garbage"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestResolveAll_ContextCancelled(t *testing.T) {
	fetcher := newMockFetcher(map[string]string{rootURL: urlset("https://example.com/a")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(fetcher, 0, testLogger()).ResolveAll(ctx, rootURL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestURLsOnly(t *testing.T) {
	resolver := NewResolver(newMockFetcher(nil), 0, testLogger())
	records := resolver.URLsOnly([]byte(urlset("https://example.com/a", " https://example.com/b ")))
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, models.Locations(records))
}
