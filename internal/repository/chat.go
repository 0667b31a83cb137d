package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adboard/chat-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ChatRepo struct {
	db *sqlx.DB
}

func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{
		db: db,
	}
}

// CreateMessage persists the message and fills in the server-assigned
// identifier and timestamp.
func (cr *ChatRepo) CreateMessage(ctx context.Context, in *domain.Message) error {
	query := `
		INSERT INTO messages (chat_id, sender, receiver, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`

	return cr.db.QueryRowContext(ctx, query, in.ChatID, in.Sender, in.Receiver, in.Text).
		Scan(&in.ID, &in.CreatedAt)
}

// SetMessageFlag flips the delivered or viewed flag to true. The flags are
// monotonic, so repeating the update is harmless.
func (cr *ChatRepo) SetMessageFlag(ctx context.Context, messageID int, action domain.Action) error {
	var query string

	switch action {
	case domain.ActionViewed:
		query = `UPDATE messages SET viewed = TRUE WHERE id = $1;`
	case domain.ActionDelivered:
		query = `UPDATE messages SET delivered = TRUE WHERE id = $1;`
	default:
		return fmt.Errorf("action %q is not a message flag", action)
	}

	_, err := cr.db.ExecContext(ctx, query, messageID)
	return err
}

// CreateChat creates the chat row and both membership rows in one
// transaction. Membership is immutable after this point.
func (cr *ChatRepo) CreateChat(ctx context.Context, entityID, userID, peerID int) (int, error) {
	tx, err := cr.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO chats (entity_id)
		VALUES ($1)
		RETURNING id;
	`

	var chatID int
	if err := tx.QueryRowContext(ctx, query, entityID).Scan(&chatID); err != nil {
		return 0, err
	}

	query = `
		INSERT INTO chat_members (user_id, chat_id)
		VALUES ($1, $3), ($2, $3);
	`

	if _, err := tx.ExecContext(ctx, query, userID, peerID, chatID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return chatID, nil
}

const chatSummaryQuery = `
	SELECT
		c.id AS chat_id,
		c.entity_id,
		cm2.user_id AS with_user_id,
		c.is_closed,
		COUNT(m.id) FILTER (WHERE m.receiver = $1 AND NOT m.viewed) AS unseen_counter,
		c.created_at
	FROM chats c
	JOIN chat_members cm ON cm.chat_id = c.id AND cm.user_id = $1
	JOIN chat_members cm2 ON cm2.chat_id = c.id AND cm2.user_id != $1
	LEFT JOIN messages m ON m.chat_id = c.id
`

// UserChats loads every chat the user participates in, newest first.
func (cr *ChatRepo) UserChats(ctx context.Context, userID int) ([]domain.ChatSummary, error) {
	query := chatSummaryQuery + `
	GROUP BY c.id, c.entity_id, cm2.user_id, c.is_closed, c.created_at
	ORDER BY c.created_at DESC;
	`

	chats := []domain.ChatSummary{}
	err := cr.db.SelectContext(ctx, &chats, query, userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return chats, nil
}

func (cr *ChatRepo) ChatSummary(ctx context.Context, userID, chatID int) (*domain.ChatSummary, error) {
	query := chatSummaryQuery + `
	WHERE c.id = $2
	GROUP BY c.id, c.entity_id, cm2.user_id, c.is_closed, c.created_at;
	`

	var summary domain.ChatSummary
	if err := cr.db.GetContext(ctx, &summary, query, userID, chatID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (cr *ChatRepo) ChatMessages(ctx context.Context, chatID int) ([]domain.Message, error) {
	query := `
		SELECT id, chat_id, sender, receiver, text, delivered, viewed, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY id ASC;
	`

	messages := []domain.Message{}
	err := cr.db.SelectContext(ctx, &messages, query, chatID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return messages, nil
}

// ChatPeer returns the other participant of a two-party chat.
func (cr *ChatRepo) ChatPeer(ctx context.Context, chatID, userID int) (int, error) {
	query := `
		SELECT user_id FROM chat_members
		WHERE chat_id = $1 AND user_id != $2;
	`

	var peerID int
	if err := cr.db.GetContext(ctx, &peerID, query, chatID, userID); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return peerID, nil
}

// CreateTranslation stores a translation once; a concurrent duplicate for
// the same (message, language) pair is dropped by the conflict target.
func (cr *ChatRepo) CreateTranslation(ctx context.Context, in *domain.TranslatedMessage) error {
	query := `
		INSERT INTO translated_messages (message_id, language, translated)
		VALUES ($1, $2, $3)
		ON CONFLICT (message_id, language) DO NOTHING;
	`

	_, err := cr.db.ExecContext(ctx, query, in.MessageID, in.Language, in.Translated)
	return err
}
