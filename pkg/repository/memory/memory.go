package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Memory is the in-memory repository used for tests and development runs
type Memory struct {
	documents     *documentRepository
	messages      *messageRepository
	accounts      *accountRepository
	conversations *conversationRepository
	channels      *channelRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		documents:     newDocumentRepository(),
		messages:      newMessageRepository(),
		accounts:      newAccountRepository(),
		conversations: newConversationRepository(),
		channels:      newChannelRepository(),
	}
}

func (m *Memory) Document() interfaces.DocumentRepository {
	return m.documents
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.messages
}

func (m *Memory) Account() interfaces.AccountRepository {
	return m.accounts
}

func (m *Memory) Conversation() interfaces.ConversationRepository {
	return m.conversations
}

func (m *Memory) Channel() interfaces.ChannelRepository {
	return m.channels
}

func (m *Memory) Close() error {
	return nil
}
