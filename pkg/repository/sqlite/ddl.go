package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/secmon-lab/charybdis/pkg/domain/model"
)

// ddlStatements renders the CREATE TABLE and CREATE INDEX statements for
// one storage contract. Statements are idempotent so provisioning can run
// on every open.
func ddlStatements(schema model.TableSchema) []string {
	cols := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		def := fmt.Sprintf("%s %s", col.Name, col.Kind.SQLType())
		if col.Name == schema.PrimaryKey {
			def += " PRIMARY KEY"
		}
		cols = append(cols, def)
	}

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", schema.Name, strings.Join(cols, ", ")),
	}

	for _, col := range schema.Columns {
		if !col.Indexed || col.Name == schema.PrimaryKey {
			continue
		}
		stmts = append(stmts, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s)",
			schema.Name, col.Name, schema.Name, col.Name,
		))
	}

	return stmts
}

// upsertSQL renders an INSERT ... ON CONFLICT statement updating every
// non-key column, so re-ingesting a record replaces it in place.
func upsertSQL(schema model.TableSchema) string {
	names := make([]string, 0, len(schema.Columns))
	holders := make([]string, 0, len(schema.Columns))
	updates := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		names = append(names, col.Name)
		holders = append(holders, "?")
		if col.Name != schema.PrimaryKey {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", col.Name, col.Name))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		schema.Name,
		strings.Join(names, ", "),
		strings.Join(holders, ", "),
		schema.PrimaryKey,
		strings.Join(updates, ", "),
	)
}

// selectSQL renders the column list used by every read of the table
func selectSQL(schema model.TableSchema) string {
	names := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		names = append(names, col.Name)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), schema.Name)
}

// parseTimestamp decodes a stored timestamp column. Returns nil for NULL.
func parseTimestamp(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
