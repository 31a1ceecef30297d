package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// SourcesFile is the TOML layout of an ingest source list:
//
//	sources = [
//	  "github:acme",
//	  "site:https://example.com/blog",
//	  "file:./docs/*.md",
//	]
type SourcesFile struct {
	Sources []string `toml:"sources"`
}

// Validate checks the file lists at least one non-empty source. Whether
// each entry parses as a descriptor is decided at load time, where a bad
// entry is reported instead of rejected.
func (s *SourcesFile) Validate() error {
	if len(s.Sources) == 0 {
		return goerr.New("sources file lists no sources")
	}
	for _, src := range s.Sources {
		if src == "" {
			return goerr.New("sources file contains an empty source entry")
		}
	}
	return nil
}

// LoadSourcesFile reads and validates a TOML source list
func LoadSourcesFile(path string) (*SourcesFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sources file", goerr.V("path", path))
	}

	var cfg SourcesFile
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML sources file", goerr.V("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "sources file validation failed", goerr.V("path", path))
	}

	return &cfg, nil
}
