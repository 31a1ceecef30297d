package interfaces

import (
	"context"

	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/domain/types"
)

// MessageRepository defines the interface for Message data persistence
type MessageRepository interface {
	// Put upserts messages by ID
	Put(ctx context.Context, msgs []*model.Message) error

	// Get retrieves a message by ID
	Get(ctx context.Context, id string) (*model.Message, error)

	// ListByChannel retrieves all messages in one channel
	ListByChannel(ctx context.Context, channelID string) ([]*model.Message, error)
}

// AccountRepository defines the interface for Account data persistence
type AccountRepository interface {
	// Put upserts accounts by ID
	Put(ctx context.Context, accounts []*model.Account) error

	// Get retrieves an account by ID
	Get(ctx context.Context, id int64) (*model.Account, error)

	// GetBySource retrieves an account by platform identity
	GetBySource(ctx context.Context, source types.MessageSource, sourceID string) (*model.Account, error)
}

// ConversationRepository defines the interface for Conversation data persistence
type ConversationRepository interface {
	// Put upserts conversations by ID
	Put(ctx context.Context, convs []*model.Conversation) error

	// Get retrieves a conversation by ID
	Get(ctx context.Context, id string) (*model.Conversation, error)

	// ListByUser retrieves all conversations for one user
	ListByUser(ctx context.Context, userID string) ([]*model.Conversation, error)
}

// ChannelRepository defines the interface for Channel data persistence
type ChannelRepository interface {
	// Put upserts channels by ID
	Put(ctx context.Context, channels []*model.Channel) error

	// Get retrieves a channel by ID
	Get(ctx context.Context, id string) (*model.Channel, error)
}
