package site

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/interfaces"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/utils/logging"
	"github.com/secmon-lab/charybdis/pkg/utils/safe"
)

// defaultCacheRoot mirrors the sources directory layout:
// <root>/<host>/<path>/index.html and content.txt
const defaultCacheRoot = ".sources/sites"

// Loader fetches one page, strips its markup mechanically, asks the
// extractor for the main content, and caches both artifacts on disk.
type Loader struct {
	url        *url.URL
	httpClient *http.Client
	extractor  interfaces.ContentExtractor
	cache      *cache
}

// Option configures the site loader
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(l *Loader) {
		l.httpClient = httpClient
	}
}

// WithCacheRoot relocates the on-disk artifact cache
func WithCacheRoot(dir string) Option {
	return func(l *Loader) {
		l.cache.root = dir
	}
}

// WithCacheTTL enables the cache-read short-circuit: an extracted text
// younger than ttl is returned without re-fetching. Disabled by default
// because cached pages have no indefinite validity.
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		l.cache.ttl = ttl
	}
}

// New validates the URL up front; malformed URLs fail at construction,
// not at load time.
func New(rawURL string, extractor interfaces.ContentExtractor, opts ...Option) (*Loader, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid site URL", goerr.V("url", rawURL))
	}
	if !u.IsAbs() {
		return nil, goerr.New("site URL must be absolute", goerr.V("url", rawURL))
	}
	if extractor == nil {
		return nil, goerr.New("content extractor is required")
	}

	l := &Loader{
		url:        u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		extractor:  extractor,
		cache:      &cache{root: defaultCacheRoot},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// ExtractContent fetches the page and returns its extracted main content
func (l *Loader) ExtractContent(ctx context.Context) (string, error) {
	if content, ok := l.cache.read(l.url); ok {
		logging.From(ctx).Debug("using cached site content", "url", l.url.String())
		return content, nil
	}

	logging.From(ctx).Debug("fetching and extracting site content", "url", l.url.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url.String(), nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build site request", goerr.V("url", l.url.String()))
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch site", goerr.V("url", l.url.String()))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected site response status",
			goerr.V("url", l.url.String()), goerr.V("status", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read site response", goerr.V("url", l.url.String()))
	}

	stripped := stripMarkup(string(raw))

	content, err := l.extractor.ExtractContent(ctx, stripped)
	if err != nil {
		return "", goerr.Wrap(err, "failed to extract site content", goerr.V("url", l.url.String()))
	}

	// A cache write failure loses the artifact, not the run
	if err := l.cache.writeArtifacts(l.url, stripped, content); err != nil {
		logging.From(ctx).Warn("failed to cache site artifacts",
			"url", l.url.String(), "error", err)
	}

	return content, nil
}

// Load returns the page as a single document. Scraped pages have no
// natural creation time, so CreatedAt stays empty.
func (l *Loader) Load(ctx context.Context) ([]*model.Document, error) {
	content, err := l.ExtractContent(ctx)
	if err != nil {
		return nil, err
	}

	rawURL := l.url.String()
	return []*model.Document{
		{
			ID:       model.SiteDocumentID(rawURL),
			SourceID: model.SiteSourceID(rawURL),
			Content:  content,
			Metadata: map[string]any{"url": rawURL},
		},
	}, nil
}
