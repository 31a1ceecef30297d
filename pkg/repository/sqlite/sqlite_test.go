package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestDDLStatements(t *testing.T) {
	stmts := ddlStatements(model.DocumentTable)
	if len(stmts) != 2 {
		t.Fatalf("expected table + one index, got %d statements", len(stmts))
	}
	if !strings.Contains(stmts[0], "CREATE TABLE IF NOT EXISTS documents") {
		t.Errorf("unexpected create statement: %s", stmts[0])
	}
	if !strings.Contains(stmts[0], "id TEXT PRIMARY KEY") {
		t.Errorf("primary key missing: %s", stmts[0])
	}
	if !strings.Contains(stmts[1], "idx_documents_source_id") {
		t.Errorf("source_id index missing: %s", stmts[1])
	}
}

func TestUpsertSQL(t *testing.T) {
	stmt := upsertSQL(model.DocumentTable)
	if !strings.Contains(stmt, "ON CONFLICT(id) DO UPDATE SET") {
		t.Errorf("upsert clause missing: %s", stmt)
	}
	if strings.Contains(stmt, "id = excluded.id") {
		t.Errorf("primary key must not be updated: %s", stmt)
	}
	if !strings.Contains(stmt, "content = excluded.content") {
		t.Errorf("content update missing: %s", stmt)
	}
}

func TestInvalidStoredEnumIsConversionError(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	// Bypass the typed Put to plant a row with an enum no variant matches
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO messages (id, source, source_id, channel_type, channel_id, account_id, role, content, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		"msg-bad", "carrier-pigeon", "x", "text", "c1", "a1", "user", "hi", nil)
	if err != nil {
		t.Fatalf("failed to plant row: %v", err)
	}

	if _, err := c.Message().Get(ctx, "msg-bad"); err == nil {
		t.Error("expected conversion error for unknown source variant")
	}

	if _, err := c.Message().ListByChannel(ctx, "c1"); err == nil {
		t.Error("expected conversion error from list as well")
	}
}
