package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/charybdis/pkg/service/site"
)

type stubExtractor struct {
	calls  int
	result string
	err    error
	lastIn string
}

func (s *stubExtractor) ExtractContent(ctx context.Context, text string) (string, error) {
	s.calls++
	s.lastIn = text
	if s.err != nil {
		return "", s.err
	}
	if s.result != "" {
		return s.result, nil
	}
	return text, nil
}

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Ignored head</title>
<script>var tracker = "head-script";</script>
</head>
<body>
<script type="text/javascript">console.log("body-script");</script>
<style>.nav { display: none; }</style>
<nav><a href="/">Home</a></nav>
<h1>Release   Notes</h1>
<p>Fish &amp; chips&nbsp;now &lt;cheaper&gt;.</p>
</body>
</html>`

func TestStripMarkup(t *testing.T) {
	ext := &stubExtractor{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	loader := gt.R1(site.New(srv.URL+"/notes", ext,
		site.WithCacheRoot(t.TempDir()),
	)).NoError(t)

	gt.R1(loader.ExtractContent(context.Background())).NoError(t)

	stripped := ext.lastIn
	if strings.Contains(stripped, "body-script") || strings.Contains(stripped, "head-script") {
		t.Errorf("script content survived stripping: %q", stripped)
	}
	if strings.Contains(stripped, "display: none") {
		t.Errorf("style content survived stripping: %q", stripped)
	}
	if strings.Contains(stripped, "<nav") || strings.Contains(stripped, "</p>") {
		t.Errorf("markup tags survived stripping: %q", stripped)
	}
	if !strings.Contains(stripped, "Fish & chips now") {
		t.Errorf("entities not decoded: %q", stripped)
	}
	if !strings.Contains(stripped, "Release Notes") {
		t.Errorf("repeated whitespace not collapsed: %q", stripped)
	}
	if strings.Contains(stripped, "Ignored head") {
		t.Errorf("head content leaked into body isolation: %q", stripped)
	}
}

func TestStripMarkupWithoutBodyMarkers(t *testing.T) {
	ext := &stubExtractor{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<div>No body tags here &amp; still readable</div>`))
	}))
	defer srv.Close()

	loader := gt.R1(site.New(srv.URL, ext,
		site.WithCacheRoot(t.TempDir()),
	)).NoError(t)

	gt.R1(loader.ExtractContent(context.Background())).NoError(t)
	gt.Value(t, ext.lastIn).Equal("No body tags here & still readable")
}

func TestCacheLayout(t *testing.T) {
	ext := &stubExtractor{result: "the main content"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	cacheRoot := t.TempDir()
	loader := gt.R1(site.New(srv.URL+"/docs/setup/", ext,
		site.WithCacheRoot(cacheRoot),
	)).NoError(t)

	content := gt.R1(loader.ExtractContent(context.Background())).NoError(t)
	gt.Value(t, content).Equal("the main content")

	host := strings.TrimPrefix(srv.URL, "http://")
	host = strings.Split(host, ":")[0]
	dir := filepath.Join(cacheRoot, host, "docs", "setup")

	saved, err := os.ReadFile(filepath.Join(dir, "content.txt"))
	gt.NoError(t, err)
	gt.Value(t, string(saved)).Equal("the main content")

	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("expected stripped intermediate on disk: %v", err)
	}
}

func TestCacheReadDisabledByDefault(t *testing.T) {
	ext := &stubExtractor{result: "extracted"}
	var fetches int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	cacheRoot := t.TempDir()
	loader := gt.R1(site.New(srv.URL, ext,
		site.WithCacheRoot(cacheRoot),
	)).NoError(t)

	gt.R1(loader.ExtractContent(context.Background())).NoError(t)
	gt.R1(loader.ExtractContent(context.Background())).NoError(t)

	gt.Value(t, fetches).Equal(2)
	gt.Value(t, ext.calls).Equal(2)
}

func TestCacheReadWithTTL(t *testing.T) {
	ext := &stubExtractor{result: "extracted"}
	var fetches int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	cacheRoot := t.TempDir()
	newLoader := func() *site.Loader {
		return gt.R1(site.New(srv.URL, ext,
			site.WithCacheRoot(cacheRoot),
			site.WithCacheTTL(time.Hour),
		)).NoError(t)
	}

	gt.R1(newLoader().ExtractContent(context.Background())).NoError(t)
	content := gt.R1(newLoader().ExtractContent(context.Background())).NoError(t)

	gt.Value(t, content).Equal("extracted")
	gt.Value(t, fetches).Equal(1)
	gt.Value(t, ext.calls).Equal(1)
}

func TestMalformedURLFailsAtConstruction(t *testing.T) {
	ext := &stubExtractor{}

	if _, err := site.New("://not-a-url", ext); err == nil {
		t.Error("expected error for malformed URL")
	}
	if _, err := site.New("relative/path", ext); err == nil {
		t.Error("expected error for non-absolute URL")
	}
}

func TestLoadBuildsDocument(t *testing.T) {
	ext := &stubExtractor{result: "page content"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	pageURL := srv.URL + "/page"
	loader := gt.R1(site.New(pageURL, ext,
		site.WithCacheRoot(t.TempDir()),
	)).NoError(t)

	docs := gt.R1(loader.Load(context.Background())).NoError(t)
	gt.Array(t, docs).Length(1)
	gt.Value(t, string(docs[0].ID)).Equal(pageURL)
	gt.Value(t, docs[0].SourceID).Equal("site:" + pageURL)
	gt.Value(t, docs[0].Content).Equal("page content")
	if docs[0].CreatedAt != nil {
		t.Errorf("scraped pages have no creation time, got %v", docs[0].CreatedAt)
	}
}

func TestExtractionFailurePropagates(t *testing.T) {
	ext := &stubExtractor{err: context.DeadlineExceeded}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	loader := gt.R1(site.New(srv.URL, ext,
		site.WithCacheRoot(t.TempDir()),
	)).NoError(t)

	if _, err := loader.ExtractContent(context.Background()); err == nil {
		t.Error("expected extraction failure to propagate")
	}
}
