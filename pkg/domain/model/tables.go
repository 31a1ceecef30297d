package model

// Storage contracts for every persisted entity. The sqlite repository
// generates its DDL and bind lists from these, so adding a column here is
// the single change needed to persist a new field.

// DocumentTable is the storage contract for ingested documents
var DocumentTable = TableSchema{
	Name:        "documents",
	PrimaryKey:  "id",
	EmbedColumn: "content",
	Columns: []Column{
		{Name: "id", Kind: ColumnText},
		{Name: "source_id", Kind: ColumnText, Indexed: true},
		{Name: "content", Kind: ColumnText},
		{Name: "created_at", Kind: ColumnTimestamp},
		{Name: "metadata", Kind: ColumnText},
	},
}

// MessageTable is the storage contract for chat messages
var MessageTable = TableSchema{
	Name:        "messages",
	PrimaryKey:  "id",
	EmbedColumn: "content",
	Columns: []Column{
		{Name: "id", Kind: ColumnText},
		{Name: "source", Kind: ColumnText},
		{Name: "source_id", Kind: ColumnText},
		{Name: "channel_type", Kind: ColumnText},
		{Name: "channel_id", Kind: ColumnText, Indexed: true},
		{Name: "account_id", Kind: ColumnText},
		{Name: "role", Kind: ColumnText},
		{Name: "content", Kind: ColumnText},
		{Name: "created_at", Kind: ColumnTimestamp},
	},
}

// AccountTable is the storage contract for chat accounts
var AccountTable = TableSchema{
	Name:       "accounts",
	PrimaryKey: "id",
	Columns: []Column{
		{Name: "id", Kind: ColumnInteger},
		{Name: "source_id", Kind: ColumnText, Indexed: true},
		{Name: "name", Kind: ColumnText},
		{Name: "source", Kind: ColumnText, Indexed: true},
		{Name: "created_at", Kind: ColumnTimestamp},
		{Name: "updated_at", Kind: ColumnTimestamp},
	},
}

// ConversationTable is the storage contract for conversations
var ConversationTable = TableSchema{
	Name:       "conversations",
	PrimaryKey: "id",
	Columns: []Column{
		{Name: "id", Kind: ColumnText},
		{Name: "user_id", Kind: ColumnText, Indexed: true},
		{Name: "title", Kind: ColumnText},
		{Name: "created_at", Kind: ColumnTimestamp},
		{Name: "updated_at", Kind: ColumnTimestamp},
	},
}

// ChannelTable is the storage contract for chat channels
var ChannelTable = TableSchema{
	Name:       "channels",
	PrimaryKey: "id",
	Columns: []Column{
		{Name: "id", Kind: ColumnText},
		{Name: "channel_id", Kind: ColumnText, Indexed: true},
		{Name: "channel_type", Kind: ColumnText},
		{Name: "source", Kind: ColumnText},
		{Name: "name", Kind: ColumnText},
		{Name: "created_at", Kind: ColumnTimestamp},
		{Name: "updated_at", Kind: ColumnTimestamp},
	},
}

// AllTables lists every storage contract the repository must provision
func AllTables() []TableSchema {
	return []TableSchema{
		DocumentTable,
		MessageTable,
		AccountTable,
		ConversationTable,
		ChannelTable,
	}
}
