package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

func TestDeterministicDocumentIDs(t *testing.T) {
	gt.Value(t, model.RepoDocumentID("acme/widget")).
		Equal(model.DocumentID("github:repo:acme/widget"))
	gt.Value(t, model.PullRequestDocumentID("acme", "acme/widget", 42)).
		Equal(model.DocumentID("github:pr:acme:acme/widget/42"))
	gt.Value(t, model.IssueDocumentID("acme", "acme/widget", 7)).
		Equal(model.DocumentID("github:issue:acme:acme/widget/7"))
	gt.Value(t, model.CommitDocumentID("acme", "acme/widget", "abc123")).
		Equal(model.DocumentID("github:commit:acme:acme/widget/abc123"))
	gt.Value(t, model.SiteDocumentID("https://example.com/page")).
		Equal(model.DocumentID("https://example.com/page"))
	gt.Value(t, model.FileDocumentID("/data/notes.md")).
		Equal(model.DocumentID("/data/notes.md"))
}

func TestSourceIDs(t *testing.T) {
	gt.Value(t, model.GitHubOrgSourceID("acme")).Equal("github:acme")
	gt.Value(t, model.SiteSourceID("https://example.com")).Equal("site:https://example.com")
	gt.Value(t, model.FileSourceID("./docs/*.md")).Equal("file:./docs/*.md")
}

func TestColumnValueArg(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	t.Run("text", func(t *testing.T) {
		gt.Value(t, model.TextValue("hello").Arg()).Equal(any("hello"))
	})

	t.Run("integer", func(t *testing.T) {
		gt.Value(t, model.IntegerValue(42).Arg()).Equal(any(int64(42)))
	})

	t.Run("timestamp formats as RFC3339", func(t *testing.T) {
		gt.Value(t, model.TimestampValue(&ts).Arg()).Equal(any("2024-03-01T12:30:00Z"))
	})

	t.Run("nil timestamp is null", func(t *testing.T) {
		v := model.TimestampValue(nil)
		gt.Bool(t, v.Null).True()
		gt.Value(t, v.Arg()).Nil()
	})

	t.Run("explicit null", func(t *testing.T) {
		gt.Value(t, model.NullValue(model.ColumnText).Arg()).Nil()
	})
}

func TestTableSchemaValidate(t *testing.T) {
	valid := model.TableSchema{
		Name:        "documents",
		PrimaryKey:  "id",
		EmbedColumn: "content",
		Columns: []model.Column{
			{Name: "id", Kind: model.ColumnText},
			{Name: "source_id", Kind: model.ColumnText, Indexed: true},
			{Name: "content", Kind: model.ColumnText},
			{Name: "created_at", Kind: model.ColumnTimestamp},
		},
	}
	gt.NoError(t, valid.Validate())

	t.Run("missing primary key column", func(t *testing.T) {
		s := valid
		s.PrimaryKey = "nope"
		gt.Error(t, s.Validate())
	})

	t.Run("embed column not declared", func(t *testing.T) {
		s := valid
		s.EmbedColumn = "body"
		gt.Error(t, s.Validate())
	})

	t.Run("duplicate column", func(t *testing.T) {
		s := valid
		s.Columns = append(s.Columns, model.Column{Name: "id", Kind: model.ColumnText})
		gt.Error(t, s.Validate())
	})
}
