package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

type documentRepository struct {
	mu   sync.RWMutex
	docs map[model.DocumentID]*model.Document
}

func newDocumentRepository() *documentRepository {
	return &documentRepository{
		docs: make(map[model.DocumentID]*model.Document),
	}
}

// copyDocument creates a deep copy of a document
func copyDocument(d *model.Document) *model.Document {
	copied := &model.Document{
		ID:       d.ID,
		SourceID: d.SourceID,
		Content:  d.Content,
	}
	if d.CreatedAt != nil {
		t := *d.CreatedAt
		copied.CreatedAt = &t
	}
	if d.Metadata != nil {
		copied.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			copied.Metadata[k] = v
		}
	}
	return copied
}

func (r *documentRepository) Put(ctx context.Context, docs []*model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range docs {
		r.docs[doc.ID] = copyDocument(doc)
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.docs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("id", id))
	}
	return copyDocument(doc), nil
}

func (r *documentRepository) ListBySource(ctx context.Context, sourceID string) ([]*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Document
	for _, doc := range r.docs {
		if doc.SourceID == sourceID {
			result = append(result, copyDocument(doc))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *documentRepository) DeleteBySource(ctx context.Context, sourceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, doc := range r.docs {
		if doc.SourceID == sourceID {
			delete(r.docs, id)
		}
	}
	return nil
}
