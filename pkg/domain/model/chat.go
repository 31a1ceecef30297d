package model

import (
	"time"

	"github.com/secmon-lab/charybdis/pkg/domain/types"
)

// Account represents a chat participant on an external platform. Owned by
// the chat subsystem; modeled here only for the storage contract it must
// satisfy.
type Account struct {
	ID        int64
	SourceID  string
	Name      string
	Source    types.MessageSource
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Conversation groups messages exchanged with one user
type Conversation struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Message is a single chat message. Content is the embedding target;
// Source and ChannelType are closed enumerations persisted in canonical
// string form.
type Message struct {
	ID          string
	Source      types.MessageSource
	SourceID    string
	ChannelType types.ChannelType
	ChannelID   string
	AccountID   string
	Role        string
	Content     string
	CreatedAt   *time.Time
}

// Channel represents a conversation channel on an external platform
type Channel struct {
	ID          string
	ChannelID   string
	ChannelType types.ChannelType
	Source      types.MessageSource
	Name        string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}
