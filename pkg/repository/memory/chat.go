package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/domain/types"
)

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

type messageRepository struct {
	mu   sync.RWMutex
	msgs map[string]*model.Message
}

func newMessageRepository() *messageRepository {
	return &messageRepository{msgs: make(map[string]*model.Message)}
}

func copyMessage(m *model.Message) *model.Message {
	copied := *m
	copied.CreatedAt = copyTime(m.CreatedAt)
	return &copied
}

func (r *messageRepository) Put(ctx context.Context, msgs []*model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msg := range msgs {
		r.msgs[msg.ID] = copyMessage(msg)
	}
	return nil
}

func (r *messageRepository) Get(ctx context.Context, id string) (*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, exists := r.msgs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "message not found", goerr.V("id", id))
	}
	return copyMessage(msg), nil
}

func (r *messageRepository) ListByChannel(ctx context.Context, channelID string) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Message
	for _, msg := range r.msgs {
		if msg.ChannelID == channelID {
			result = append(result, copyMessage(msg))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ti, tj := result[i].CreatedAt, result[j].CreatedAt
		if ti == nil || tj == nil {
			return result[i].ID < result[j].ID
		}
		return ti.Before(*tj)
	})
	return result, nil
}

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*model.Account
}

func newAccountRepository() *accountRepository {
	return &accountRepository{accounts: make(map[int64]*model.Account)}
}

func copyAccount(a *model.Account) *model.Account {
	copied := *a
	copied.CreatedAt = copyTime(a.CreatedAt)
	copied.UpdatedAt = copyTime(a.UpdatedAt)
	return &copied
}

func (r *accountRepository) Put(ctx context.Context, accounts []*model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range accounts {
		r.accounts[account.ID] = copyAccount(account)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id int64) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "account not found", goerr.V("id", id))
	}
	return copyAccount(account), nil
}

func (r *accountRepository) GetBySource(ctx context.Context, source types.MessageSource, sourceID string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Source == source && account.SourceID == sourceID {
			return copyAccount(account), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "account not found",
		goerr.V("source", source), goerr.V("sourceID", sourceID))
}

type conversationRepository struct {
	mu    sync.RWMutex
	convs map[string]*model.Conversation
}

func newConversationRepository() *conversationRepository {
	return &conversationRepository{convs: make(map[string]*model.Conversation)}
}

func copyConversation(c *model.Conversation) *model.Conversation {
	copied := *c
	copied.CreatedAt = copyTime(c.CreatedAt)
	copied.UpdatedAt = copyTime(c.UpdatedAt)
	return &copied
}

func (r *conversationRepository) Put(ctx context.Context, convs []*model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, conv := range convs {
		r.convs[conv.ID] = copyConversation(conv)
	}
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id string) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, exists := r.convs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "conversation not found", goerr.V("id", id))
	}
	return copyConversation(conv), nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Conversation
	for _, conv := range r.convs {
		if conv.UserID == userID {
			result = append(result, copyConversation(conv))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ti, tj := result[i].CreatedAt, result[j].CreatedAt
		if ti == nil || tj == nil {
			return result[i].ID < result[j].ID
		}
		return ti.Before(*tj)
	})
	return result, nil
}

type channelRepository struct {
	mu       sync.RWMutex
	channels map[string]*model.Channel
}

func newChannelRepository() *channelRepository {
	return &channelRepository{channels: make(map[string]*model.Channel)}
}

func copyChannel(c *model.Channel) *model.Channel {
	copied := *c
	copied.CreatedAt = copyTime(c.CreatedAt)
	copied.UpdatedAt = copyTime(c.UpdatedAt)
	return &copied
}

func (r *channelRepository) Put(ctx context.Context, channels []*model.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range channels {
		r.channels[ch.ID] = copyChannel(ch)
	}
	return nil
}

func (r *channelRepository) Get(ctx context.Context, id string) (*model.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, exists := r.channels[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "channel not found", goerr.V("id", id))
	}
	return copyChannel(ch), nil
}
