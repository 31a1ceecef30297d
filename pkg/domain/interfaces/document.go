package interfaces

import (
	"context"

	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

// DocumentSink receives batches of normalized documents. Loaders depend on
// this single method rather than the full repository surface.
type DocumentSink interface {
	AddDocuments(ctx context.Context, docs []*model.Document) error
}

// DocumentRepository defines the interface for Document data persistence
type DocumentRepository interface {
	// Put upserts documents by ID: re-ingesting an entity replaces the
	// stored row instead of creating a duplicate
	Put(ctx context.Context, docs []*model.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id model.DocumentID) (*model.Document, error)

	// ListBySource retrieves all documents produced by one source
	ListBySource(ctx context.Context, sourceID string) ([]*model.Document, error)

	// DeleteBySource removes all documents produced by one source
	DeleteBySource(ctx context.Context, sourceID string) error
}
