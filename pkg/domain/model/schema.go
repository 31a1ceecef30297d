package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ColumnKind enumerates the storage primitives the persistence layer
// supports. Kept as a small closed set so binding and DDL generation can
// switch over every case.
type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnInteger
	ColumnTimestamp
)

// SQLType returns the SQL column type for the kind
func (k ColumnKind) SQLType() string {
	switch k {
	case ColumnInteger:
		return "INTEGER"
	case ColumnTimestamp:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// ColumnValue is a tagged union over the supported storage primitives.
// Exactly one member is meaningful, selected by Kind. A nullable value is
// expressed with Null set.
type ColumnValue struct {
	Kind      ColumnKind
	Null      bool
	Text      string
	Integer   int64
	Timestamp time.Time
}

// TextValue builds a text column value
func TextValue(s string) ColumnValue {
	return ColumnValue{Kind: ColumnText, Text: s}
}

// IntegerValue builds an integer column value
func IntegerValue(i int64) ColumnValue {
	return ColumnValue{Kind: ColumnInteger, Integer: i}
}

// TimestampValue builds a timestamp column value. A nil time becomes NULL.
func TimestampValue(t *time.Time) ColumnValue {
	if t == nil {
		return ColumnValue{Kind: ColumnTimestamp, Null: true}
	}
	return ColumnValue{Kind: ColumnTimestamp, Timestamp: t.UTC()}
}

// NullValue builds a NULL of the given kind
func NullValue(kind ColumnKind) ColumnValue {
	return ColumnValue{Kind: kind, Null: true}
}

// Arg returns the value as a database driver argument
func (v ColumnValue) Arg() any {
	if v.Null {
		return nil
	}
	switch v.Kind {
	case ColumnInteger:
		return v.Integer
	case ColumnTimestamp:
		return v.Timestamp.UTC().Format(time.RFC3339Nano)
	default:
		return v.Text
	}
}

// Column describes one persisted field of an entity
type Column struct {
	Name    string
	Kind    ColumnKind
	Indexed bool
}

// TableSchema fixes the storage contract for one entity kind: the primary
// key, the columns indexed for equality lookup, and the single column that
// is the embedding target. Every other column is retrievable metadata, not
// search input.
type TableSchema struct {
	Name        string
	PrimaryKey  string
	EmbedColumn string
	Columns     []Column
}

// Validate checks the schema references its own columns consistently
func (s TableSchema) Validate() error {
	if s.Name == "" {
		return goerr.New("table schema requires a name")
	}
	names := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return goerr.New("table schema has unnamed column", goerr.V("table", s.Name))
		}
		if names[c.Name] {
			return goerr.New("table schema has duplicate column", goerr.V("table", s.Name), goerr.V("column", c.Name))
		}
		names[c.Name] = true
	}
	if !names[s.PrimaryKey] {
		return goerr.New("table schema primary key is not a column", goerr.V("table", s.Name), goerr.V("key", s.PrimaryKey))
	}
	if s.EmbedColumn != "" && !names[s.EmbedColumn] {
		return goerr.New("table schema embed column is not a column", goerr.V("table", s.Name), goerr.V("column", s.EmbedColumn))
	}
	return nil
}
