package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/charybdis/pkg/cli/config"
)

func TestLoadSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.toml")
	body := `sources = [
  "github:acme",
  "site:https://example.com/blog",
  "file:./docs/*.md",
]
`
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg := gt.R1(config.LoadSourcesFile(path)).NoError(t)
	gt.Array(t, cfg.Sources).Length(3)
	gt.Value(t, cfg.Sources[0]).Equal("github:acme")
}

func TestLoadSourcesFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.toml")
	gt.NoError(t, os.WriteFile(path, []byte("sources = []\n"), 0600))

	if _, err := config.LoadSourcesFile(path); err == nil {
		t.Error("expected error for empty source list")
	}
}

func TestLoadSourcesFileMissing(t *testing.T) {
	if _, err := config.LoadSourcesFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
