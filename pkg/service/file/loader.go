package file

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/utils/logging"
)

// Loader reads local files matched by a glob pattern, one document per
// file keyed by its path
type Loader struct {
	pattern string
}

// New creates a file loader for the given glob pattern
func New(pattern string) *Loader {
	return &Loader{pattern: pattern}
}

// Load resolves the glob and reads every match. An unreadable file is
// logged and skipped so one bad file does not sink the rest of the
// pattern; a malformed pattern is an error.
func (l *Loader) Load(ctx context.Context) ([]*model.Document, error) {
	matches, err := filepath.Glob(l.pattern)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid file glob pattern", goerr.V("pattern", l.pattern))
	}

	sourceID := model.FileSourceID(l.pattern)
	var docs []*model.Document
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return docs, goerr.Wrap(err, "file load canceled", goerr.V("pattern", l.pattern))
		}

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logging.From(ctx).Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}

		docs = append(docs, &model.Document{
			ID:       model.FileDocumentID(path),
			SourceID: sourceID,
			Content:  string(data),
			Metadata: map[string]any{"path": path},
		})
	}

	return docs, nil
}
