package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/interfaces"
	"github.com/secmon-lab/charybdis/pkg/domain/model"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Client is the SQLite-backed repository. Tables are provisioned from the
// storage contracts in the model package, so schema and persistence cannot
// drift apart.
type Client struct {
	db   *sql.DB
	path string
}

var _ interfaces.Repository = &Client{}

// New opens (creating if needed) the database at dbPath and provisions all
// tables. WAL mode keeps concurrent loader writes from blocking each other.
func New(dbPath string) (*Client, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("dir", dir))
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", dbPath))
	}

	c := &Client{db: db, path: dbPath}
	if err := c.provision(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

func (c *Client) provision() error {
	for _, schema := range model.AllTables() {
		if err := schema.Validate(); err != nil {
			return goerr.Wrap(err, "invalid table schema")
		}
		for _, stmt := range ddlStatements(schema) {
			if _, err := c.db.Exec(stmt); err != nil {
				return goerr.Wrap(err, "failed to provision table",
					goerr.V("table", schema.Name), goerr.V("stmt", stmt))
			}
		}
	}
	return nil
}

// Close closes the database connection
func (c *Client) Close() error {
	if err := c.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database", goerr.V("path", c.path))
	}
	return nil
}

// Path returns the database file path
func (c *Client) Path() string {
	return c.path
}

func (c *Client) Document() interfaces.DocumentRepository {
	return &documentRepository{db: c.db}
}

func (c *Client) Message() interfaces.MessageRepository {
	return &messageRepository{db: c.db}
}

func (c *Client) Account() interfaces.AccountRepository {
	return &accountRepository{db: c.db}
}

func (c *Client) Conversation() interfaces.ConversationRepository {
	return &conversationRepository{db: c.db}
}

func (c *Client) Channel() interfaces.ChannelRepository {
	return &channelRepository{db: c.db}
}
