package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/secmon-lab/charybdis/pkg/domain/interfaces"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/repository/memory"
	"github.com/secmon-lab/charybdis/pkg/repository/sqlite"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newSQLiteRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	client, err := sqlite.New(filepath.Join(t.TempDir(), "charybdis.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite repository: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("failed to close sqlite repository: %v", err)
		}
	})
	return client
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, sqlite.ErrNotFound)
}

func runDocumentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trips a document", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		doc := &model.Document{
			ID:        model.RepoDocumentID("acme/widget"),
			SourceID:  model.GitHubOrgSourceID("acme"),
			Content:   "Repository: acme/widget\nDescription: A widget\n",
			CreatedAt: &createdAt,
			Metadata:  map[string]any{"full_name": "acme/widget", "stars": float64(12)},
		}

		if err := repo.Document().Put(ctx, []*model.Document{doc}); err != nil {
			t.Fatalf("failed to put document: %v", err)
		}

		got, err := repo.Document().Get(ctx, doc.ID)
		if err != nil {
			t.Fatalf("failed to get document: %v", err)
		}
		if got.ID != doc.ID {
			t.Errorf("expected ID=%s, got %s", doc.ID, got.ID)
		}
		if got.SourceID != doc.SourceID {
			t.Errorf("expected SourceID=%s, got %s", doc.SourceID, got.SourceID)
		}
		if got.Content != doc.Content {
			t.Errorf("expected Content=%q, got %q", doc.Content, got.Content)
		}
		if got.CreatedAt == nil || !got.CreatedAt.Equal(createdAt) {
			t.Errorf("expected CreatedAt=%v, got %v", createdAt, got.CreatedAt)
		}
		if got.Metadata["full_name"] != "acme/widget" {
			t.Errorf("expected metadata full_name, got %v", got.Metadata)
		}
	})

	t.Run("Put with same ID replaces the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		id := model.IssueDocumentID("acme", "acme/widget", 7)
		first := &model.Document{
			ID:       id,
			SourceID: model.GitHubOrgSourceID("acme"),
			Content:  "Issue: #7 - Original title",
		}
		second := &model.Document{
			ID:       id,
			SourceID: model.GitHubOrgSourceID("acme"),
			Content:  "Issue: #7 - Edited title",
		}

		if err := repo.Document().Put(ctx, []*model.Document{first}); err != nil {
			t.Fatalf("failed to put first version: %v", err)
		}
		if err := repo.Document().Put(ctx, []*model.Document{second}); err != nil {
			t.Fatalf("failed to put second version: %v", err)
		}

		got, err := repo.Document().Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get document: %v", err)
		}
		if got.Content != second.Content {
			t.Errorf("expected replaced content %q, got %q", second.Content, got.Content)
		}

		docs, err := repo.Document().ListBySource(ctx, "github:acme")
		if err != nil {
			t.Fatalf("failed to list documents: %v", err)
		}
		if len(docs) != 1 {
			t.Errorf("expected 1 document after upsert, got %d", len(docs))
		}
	})

	t.Run("Get unknown ID returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Document().Get(ctx, model.DocumentID("github:repo:no/such"))
		if !isNotFound(err) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListBySource filters by source", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		docs := []*model.Document{
			{ID: "github:repo:acme/a", SourceID: "github:acme", Content: "a"},
			{ID: "github:repo:acme/b", SourceID: "github:acme", Content: "b"},
			{ID: "/tmp/notes.md", SourceID: "file:/tmp/*.md", Content: "notes"},
		}
		if err := repo.Document().Put(ctx, docs); err != nil {
			t.Fatalf("failed to put documents: %v", err)
		}

		got, err := repo.Document().ListBySource(ctx, "github:acme")
		if err != nil {
			t.Fatalf("failed to list documents: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(got))
		}
		if got[0].ID != "github:repo:acme/a" || got[1].ID != "github:repo:acme/b" {
			t.Errorf("unexpected list order: %v, %v", got[0].ID, got[1].ID)
		}
	})

	t.Run("DeleteBySource removes only that source", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		docs := []*model.Document{
			{ID: "https://example.com/a", SourceID: "site:https://example.com/a", Content: "a"},
			{ID: "/tmp/keep.md", SourceID: "file:/tmp/*.md", Content: "keep"},
		}
		if err := repo.Document().Put(ctx, docs); err != nil {
			t.Fatalf("failed to put documents: %v", err)
		}

		if err := repo.Document().DeleteBySource(ctx, "site:https://example.com/a"); err != nil {
			t.Fatalf("failed to delete documents: %v", err)
		}

		if _, err := repo.Document().Get(ctx, "https://example.com/a"); !isNotFound(err) {
			t.Errorf("expected deleted document to be gone, got %v", err)
		}
		if _, err := repo.Document().Get(ctx, "/tmp/keep.md"); err != nil {
			t.Errorf("expected other source to survive, got %v", err)
		}
	})

	t.Run("Put with empty batch is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Document().Put(ctx, nil); err != nil {
			t.Fatalf("expected nil error for empty batch, got %v", err)
		}
	})

	t.Run("nil timestamp survives the round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		doc := &model.Document{
			ID:       "/data/raw.txt",
			SourceID: "file:/data/*.txt",
			Content:  "raw",
		}
		if err := repo.Document().Put(ctx, []*model.Document{doc}); err != nil {
			t.Fatalf("failed to put document: %v", err)
		}

		got, err := repo.Document().Get(ctx, doc.ID)
		if err != nil {
			t.Fatalf("failed to get document: %v", err)
		}
		if got.CreatedAt != nil {
			t.Errorf("expected nil CreatedAt, got %v", got.CreatedAt)
		}
	})
}

func TestMemoryDocumentRepository(t *testing.T) {
	runDocumentRepositoryTest(t, newMemoryRepository)
}

func TestSQLiteDocumentRepository(t *testing.T) {
	runDocumentRepositoryTest(t, newSQLiteRepository)
}
