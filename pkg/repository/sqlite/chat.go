package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/charybdis/pkg/domain/model"
	"github.com/secmon-lab/charybdis/pkg/domain/types"
)

type messageRepository struct {
	db *sql.DB
}

func scanMessage(scan func(dest ...any) error) (*model.Message, error) {
	var id, source, sourceID, channelType, channelID, accountID, role, content string
	var createdAt sql.NullString

	if err := scan(&id, &source, &sourceID, &channelType, &channelID, &accountID, &role, &content, &createdAt); err != nil {
		return nil, err
	}

	msgSource, err := types.ParseMessageSource(source)
	if err != nil {
		return nil, goerr.Wrap(err, "stored message has invalid source", goerr.V("id", id))
	}
	chType, err := types.ParseChannelType(channelType)
	if err != nil {
		return nil, goerr.Wrap(err, "stored message has invalid channel type", goerr.V("id", id))
	}
	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid message created_at", goerr.V("id", id))
	}

	return &model.Message{
		ID:          id,
		Source:      msgSource,
		SourceID:    sourceID,
		ChannelType: chType,
		ChannelID:   channelID,
		AccountID:   accountID,
		Role:        role,
		Content:     content,
		CreatedAt:   ts,
	}, nil
}

func (r *messageRepository) Put(ctx context.Context, msgs []*model.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL(model.MessageTable))
	if err != nil {
		return goerr.Wrap(err, "failed to prepare message upsert")
	}
	defer stmt.Close()

	for _, msg := range msgs {
		args := []any{
			msg.ID,
			msg.Source.String(),
			msg.SourceID,
			msg.ChannelType.String(),
			msg.ChannelID,
			msg.AccountID,
			msg.Role,
			msg.Content,
			model.TimestampValue(msg.CreatedAt).Arg(),
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return goerr.Wrap(err, "failed to upsert message", goerr.V("id", msg.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit messages")
	}
	return nil
}

func (r *messageRepository) Get(ctx context.Context, id string) (*model.Message, error) {
	row := r.db.QueryRowContext(ctx, selectSQL(model.MessageTable)+" WHERE id = ?", id)
	msg, err := scanMessage(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "message not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get message", goerr.V("id", id))
	}
	return msg, nil
}

func (r *messageRepository) ListByChannel(ctx context.Context, channelID string) ([]*model.Message, error) {
	rows, err := r.db.QueryContext(ctx, selectSQL(model.MessageTable)+" WHERE channel_id = ? ORDER BY created_at", channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list messages", goerr.V("channelID", channelID))
	}
	defer rows.Close()

	var msgs []*model.Message
	for rows.Next() {
		msg, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan message", goerr.V("channelID", channelID))
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate messages", goerr.V("channelID", channelID))
	}

	return msgs, nil
}

type accountRepository struct {
	db *sql.DB
}

func scanAccount(scan func(dest ...any) error) (*model.Account, error) {
	var id int64
	var sourceID, name, source string
	var createdAt, updatedAt sql.NullString

	if err := scan(&id, &sourceID, &name, &source, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	msgSource, err := types.ParseMessageSource(source)
	if err != nil {
		return nil, goerr.Wrap(err, "stored account has invalid source", goerr.V("id", id))
	}
	created, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid account created_at", goerr.V("id", id))
	}
	updated, err := parseTimestamp(updatedAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid account updated_at", goerr.V("id", id))
	}

	return &model.Account{
		ID:        id,
		SourceID:  sourceID,
		Name:      name,
		Source:    msgSource,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func (r *accountRepository) Put(ctx context.Context, accounts []*model.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL(model.AccountTable))
	if err != nil {
		return goerr.Wrap(err, "failed to prepare account upsert")
	}
	defer stmt.Close()

	for _, account := range accounts {
		args := []any{
			account.ID,
			account.SourceID,
			account.Name,
			account.Source.String(),
			model.TimestampValue(account.CreatedAt).Arg(),
			model.TimestampValue(account.UpdatedAt).Arg(),
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return goerr.Wrap(err, "failed to upsert account", goerr.V("id", account.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit accounts")
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id int64) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx, selectSQL(model.AccountTable)+" WHERE id = ?", id)
	account, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "account not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get account", goerr.V("id", id))
	}
	return account, nil
}

func (r *accountRepository) GetBySource(ctx context.Context, source types.MessageSource, sourceID string) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx,
		selectSQL(model.AccountTable)+" WHERE source = ? AND source_id = ?",
		source.String(), sourceID)
	account, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "account not found",
				goerr.V("source", source), goerr.V("sourceID", sourceID))
		}
		return nil, goerr.Wrap(err, "failed to get account by source",
			goerr.V("source", source), goerr.V("sourceID", sourceID))
	}
	return account, nil
}

type conversationRepository struct {
	db *sql.DB
}

func scanConversation(scan func(dest ...any) error) (*model.Conversation, error) {
	var id, userID, title string
	var createdAt, updatedAt sql.NullString

	if err := scan(&id, &userID, &title, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	created, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid conversation created_at", goerr.V("id", id))
	}
	updated, err := parseTimestamp(updatedAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid conversation updated_at", goerr.V("id", id))
	}

	return &model.Conversation{
		ID:        id,
		UserID:    userID,
		Title:     title,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func (r *conversationRepository) Put(ctx context.Context, convs []*model.Conversation) error {
	if len(convs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL(model.ConversationTable))
	if err != nil {
		return goerr.Wrap(err, "failed to prepare conversation upsert")
	}
	defer stmt.Close()

	for _, conv := range convs {
		args := []any{
			conv.ID,
			conv.UserID,
			conv.Title,
			model.TimestampValue(conv.CreatedAt).Arg(),
			model.TimestampValue(conv.UpdatedAt).Arg(),
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return goerr.Wrap(err, "failed to upsert conversation", goerr.V("id", conv.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit conversations")
	}
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id string) (*model.Conversation, error) {
	row := r.db.QueryRowContext(ctx, selectSQL(model.ConversationTable)+" WHERE id = ?", id)
	conv, err := scanConversation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "conversation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get conversation", goerr.V("id", id))
	}
	return conv, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string) ([]*model.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, selectSQL(model.ConversationTable)+" WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list conversations", goerr.V("userID", userID))
	}
	defer rows.Close()

	var convs []*model.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows.Scan)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan conversation", goerr.V("userID", userID))
		}
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate conversations", goerr.V("userID", userID))
	}

	return convs, nil
}

type channelRepository struct {
	db *sql.DB
}

func scanChannel(scan func(dest ...any) error) (*model.Channel, error) {
	var id, channelID, channelType, source, name string
	var createdAt, updatedAt sql.NullString

	if err := scan(&id, &channelID, &channelType, &source, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	chType, err := types.ParseChannelType(channelType)
	if err != nil {
		return nil, goerr.Wrap(err, "stored channel has invalid type", goerr.V("id", id))
	}
	msgSource, err := types.ParseMessageSource(source)
	if err != nil {
		return nil, goerr.Wrap(err, "stored channel has invalid source", goerr.V("id", id))
	}
	created, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid channel created_at", goerr.V("id", id))
	}
	updated, err := parseTimestamp(updatedAt)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid channel updated_at", goerr.V("id", id))
	}

	return &model.Channel{
		ID:          id,
		ChannelID:   channelID,
		ChannelType: chType,
		Source:      msgSource,
		Name:        name,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func (r *channelRepository) Put(ctx context.Context, channels []*model.Channel) error {
	if len(channels) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQL(model.ChannelTable))
	if err != nil {
		return goerr.Wrap(err, "failed to prepare channel upsert")
	}
	defer stmt.Close()

	for _, ch := range channels {
		args := []any{
			ch.ID,
			ch.ChannelID,
			ch.ChannelType.String(),
			ch.Source.String(),
			ch.Name,
			model.TimestampValue(ch.CreatedAt).Arg(),
			model.TimestampValue(ch.UpdatedAt).Arg(),
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return goerr.Wrap(err, "failed to upsert channel", goerr.V("id", ch.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit channels")
	}
	return nil
}

func (r *channelRepository) Get(ctx context.Context, id string) (*model.Channel, error) {
	row := r.db.QueryRowContext(ctx, selectSQL(model.ChannelTable)+" WHERE id = ?", id)
	ch, err := scanChannel(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "channel not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get channel", goerr.V("id", id))
	}
	return ch, nil
}
