package site

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	htmlFileName    = "index.html"
	contentFileName = "content.txt"
)

// cache persists the post-strip intermediate and the extracted text under
// deterministic URL-derived paths. Concurrent writers to the same URL path
// are last-writer-wins; the loader assumes single-writer discipline per
// URL.
type cache struct {
	root string
	ttl  time.Duration
}

// dir maps a URL to <root>/<host>/<path>
func (c *cache) dir(u *url.URL) string {
	host := u.Hostname()
	if host == "" {
		host = "unknown"
	}
	path := strings.Trim(u.Path, "/")
	return filepath.Join(c.root, host, path)
}

func (c *cache) writeArtifacts(u *url.URL, stripped, content string) error {
	dir := c.dir(u)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return goerr.Wrap(err, "failed to create cache directory", goerr.V("dir", dir))
	}

	if err := os.WriteFile(filepath.Join(dir, htmlFileName), []byte(stripped), 0600); err != nil {
		return goerr.Wrap(err, "failed to write stripped page", goerr.V("dir", dir))
	}
	if err := os.WriteFile(filepath.Join(dir, contentFileName), []byte(content), 0600); err != nil {
		return goerr.Wrap(err, "failed to write extracted content", goerr.V("dir", dir))
	}
	return nil
}

// read returns the cached extracted text if it exists and is younger than
// the TTL. A zero TTL disables reads entirely: the cache is then
// write-only and every run re-fetches.
func (c *cache) read(u *url.URL) (string, bool) {
	if c.ttl <= 0 {
		return "", false
	}

	path := filepath.Join(c.dir(u), contentFileName)
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
