package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	perPage        = 100

	// defaultConcurrency bounds how many repositories sync in parallel
	defaultConcurrency = 4
)

type client struct {
	gh          *gh.Client
	limiter     *rateLimiter
	concurrency int
}

// Option configures the GitHub service
type Option func(*client)

// WithConcurrency sets the repository fan-out width
func WithConcurrency(n int) Option {
	return func(c *client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithRateLimit overrides the proactive request rate. Raised in tests,
// lowered for shared tokens.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		if rps > 0 {
			c.limiter.bucket.SetLimit(rate.Limit(rps))
			c.limiter.bucket.SetBurst(int(rps) + 1)
		}
	}
}

// WithBaseURL points the client at a different API endpoint. Used against
// GitHub Enterprise and in tests.
func WithBaseURL(rawURL string) Option {
	return func(c *client) {
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		if u, err := url.Parse(rawURL); err == nil {
			c.gh.BaseURL = u
		}
	}
}

// New creates a GitHub service authenticated with a personal access token.
// An empty token yields an unauthenticated client with a reduced quota.
func New(token string, opts ...Option) Service {
	httpClient := &http.Client{Timeout: defaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = defaultTimeout
	}

	c := &client{
		gh:          gh.NewClient(httpClient),
		limiter:     newRateLimiter(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call wraps one API request with throttling and header tracking
func call[T any](ctx context.Context, c *client, op string, fn func() (T, *gh.Response, error)) (T, error) {
	var zero T

	if err := c.limiter.wait(ctx); err != nil {
		return zero, goerr.Wrap(err, "rate limit wait canceled", goerr.V("operation", op))
	}

	result, resp, err := fn()
	if resp != nil {
		c.limiter.update(resp.Response)
	}
	if err != nil {
		return zero, goerr.Wrap(err, "github request failed", goerr.V("operation", op))
	}

	return result, nil
}
