package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Document() DocumentRepository
	Message() MessageRepository
	Account() AccountRepository
	Conversation() ConversationRepository
	Channel() ChannelRepository

	// Close releases the underlying storage handle
	Close() error
}
