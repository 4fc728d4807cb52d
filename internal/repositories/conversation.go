package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

const conversationColumns = "id, user_id, title, created_at, updated_at"

// ConversationRepository stores conversations. Every lookup is scoped to the
// owner, so a conversation of another user is indistinguishable from a missing one.
type ConversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create inserts a conversation whose created_at and updated_at are equal.
func (r *ConversationRepository) Create(ctx context.Context, userID int64, title string) (*models.Conversation, error) {
	const query = `
		WITH now AS (SELECT clock_timestamp() AS ts)
		INSERT INTO conversations (user_id, title, created_at, updated_at)
		SELECT $1, $2, ts, ts FROM now
		RETURNING ` + conversationColumns + `
	`
	args := []any{userID, title}

	var conv models.Conversation
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &conv, query, args...)
	logQuery(query, args, conv.ID, err)

	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// Get returns the conversation if it belongs to userID.
func (r *ConversationRepository) Get(ctx context.Context, userID, id int64) (*models.Conversation, error) {
	const query = `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1 AND user_id = $2`
	args := []any{id, userID}

	var conv models.Conversation
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &conv, query, args...)
	logQuery(query, args, conv.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// List returns the owner's conversations, most recently active first.
func (r *ConversationRepository) List(ctx context.Context, userID int64) ([]models.ConversationSummary, error) {
	const query = `
		SELECT c.id, c.title, c.created_at, c.updated_at, COUNT(m.id) AS message_count
		FROM conversations c
		LEFT JOIN messages m ON m.conversation_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.updated_at DESC, c.id DESC
	`

	convs := []models.ConversationSummary{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &convs, query, userID)
	logQuery(query, []any{userID}, len(convs), err)

	if err != nil {
		return nil, err
	}
	return convs, nil
}

// Delete removes the conversation and, by cascade, its messages.
func (r *ConversationRepository) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM conversations WHERE id = $1 AND user_id = $2`
	return r.execOwned(ctx, query, id, userID)
}

// UpdateTitle replaces the title of an owned conversation.
func (r *ConversationRepository) UpdateTitle(ctx context.Context, userID, id int64, title string) error {
	const query = `UPDATE conversations SET title = $3 WHERE id = $1 AND user_id = $2`
	return r.execOwned(ctx, query, id, userID, title)
}

// Touch advances updated_at. It never moves backwards.
func (r *ConversationRepository) Touch(ctx context.Context, id int64) error {
	const query = `UPDATE conversations SET updated_at = GREATEST(clock_timestamp(), updated_at) WHERE id = $1`
	return r.execOwned(ctx, query, id)
}

func (r *ConversationRepository) execOwned(ctx context.Context, query string, args ...any) error {
	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrConversationNotFound
	}
	return nil
}
