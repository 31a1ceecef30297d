package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

type documentRepository struct {
	db *sql.DB
}

func documentArgs(doc *model.Document) ([]any, error) {
	metadata := "{}"
	if doc.Metadata != nil {
		raw, err := json.Marshal(doc.Metadata)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode document metadata", goerr.V("id", doc.ID))
		}
		metadata = string(raw)
	}

	return []any{
		model.TextValue(string(doc.ID)).Arg(),
		model.TextValue(doc.SourceID).Arg(),
		model.TextValue(doc.Content).Arg(),
		model.TimestampValue(doc.CreatedAt).Arg(),
		model.TextValue(metadata).Arg(),
	}, nil
}

func scanDocument(scan func(dest ...any) error) (*model.Document, error) {
	var id, sourceID, content string
	var createdAt, metadata sql.NullString

	if err := scan(&id, &sourceID, &content, &createdAt, &metadata); err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:       model.DocumentID(id),
		SourceID: sourceID,
		Content:  content,
	}

	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid document created_at", goerr.V("id", id))
	}
	doc.CreatedAt = ts

	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &doc.Metadata); err != nil {
			return nil, goerr.Wrap(err, "invalid document metadata", goerr.V("id", id))
		}
	}

	return doc, nil
}

func (r *documentRepository) Put(ctx context.Context, docs []*model.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL(model.DocumentTable))
	if err != nil {
		return goerr.Wrap(err, "failed to prepare document upsert")
	}
	defer stmt.Close()

	for _, doc := range docs {
		args, err := documentArgs(doc)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return goerr.Wrap(err, "failed to upsert document", goerr.V("id", doc.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit documents")
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	row := r.db.QueryRowContext(ctx, selectSQL(model.DocumentTable)+" WHERE id = ?", string(id))
	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("id", id))
	}
	return doc, nil
}

func (r *documentRepository) ListBySource(ctx context.Context, sourceID string) ([]*model.Document, error) {
	rows, err := r.db.QueryContext(ctx, selectSQL(model.DocumentTable)+" WHERE source_id = ? ORDER BY id", sourceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list documents", goerr.V("sourceID", sourceID))
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan document", goerr.V("sourceID", sourceID))
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate documents", goerr.V("sourceID", sourceID))
	}

	return docs, nil
}

func (r *documentRepository) DeleteBySource(ctx context.Context, sourceID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE source_id = ?", sourceID); err != nil {
		return goerr.Wrap(err, "failed to delete documents", goerr.V("sourceID", sourceID))
	}
	return nil
}
