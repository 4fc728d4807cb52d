package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

const messageColumns = "id, conversation_id, role, content, created_at"

// MessageRepository stores the immutable messages of conversations.
type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append inserts a message stamped with the current statement time.
func (r *MessageRepository) Append(ctx context.Context, conversationID int64, role models.Role, content string) (*models.Message, error) {
	if !role.Valid() {
		return nil, models.ErrInvalidRole
	}

	const query = `
		INSERT INTO messages (conversation_id, role, content, created_at)
		VALUES ($1, $2, $3, clock_timestamp())
		RETURNING ` + messageColumns + `
	`

	var msg models.Message
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &msg, query, conversationID, string(role), content)
	logQuery(query, []any{conversationID, role, len(content)}, msg.ID, err)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.Wrap(apperrors.NotFound, models.ErrConversationNotFound.Message, err)
		}
		return nil, err
	}
	return &msg, nil
}

// List returns messages of a conversation ordered by (created_at, id) in q.Order.
func (r *MessageRepository) List(ctx context.Context, conversationID int64, q models.MessageQuery) ([]models.Message, error) {
	direction := "ASC"
	if q.Order == models.OrderDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM messages
		WHERE conversation_id = $1
		  AND ($2::BIGINT = 0 OR id <> $2)
		ORDER BY created_at %s, id %s
	`, messageColumns, direction, direction)
	args := []any{conversationID, q.ExcludeID}
	if q.Limit > 0 {
		query += " LIMIT $3"
		args = append(args, q.Limit)
	}

	msgs := []models.Message{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &msgs, query, args...)
	logQuery(query, args, len(msgs), err)

	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Count returns the number of messages in a conversation.
func (r *MessageRepository) Count(ctx context.Context, conversationID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`

	var count int
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, query, conversationID)
	logQuery(query, []any{conversationID}, count, err)

	return count, err
}

// DeleteAllForOwner removes every message in every conversation of userID.
// The conversations themselves are kept.
func (r *MessageRepository) DeleteAllForOwner(ctx context.Context, userID int64) (int64, error) {
	const query = `
		DELETE FROM messages m
		USING conversations c
		WHERE m.conversation_id = c.id
		  AND c.user_id = $1
	`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{userID}, rowsAffected, err)

	return rowsAffected, err
}
