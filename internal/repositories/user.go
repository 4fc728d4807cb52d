package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
)

const userColumns = "id, email, username, password_hash, full_name, is_active, created_at"

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail returns the first user whose username or email matches.
// Empty arguments never match. A missing user yields (nil, nil).
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 <> '' AND username = $1)
		   OR ($2 <> '' AND email = $2)
		ORDER BY id
		LIMIT 1
	`
	args := []any{models.NormalizeLogin(username), models.NormalizeLogin(email)}

	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, args...)
	logQuery(query, args, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given id, or (nil, nil).
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, id)
	logQuery(query, []any{id}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts an active user. Duplicate usernames or emails, compared
// after normalization, are reported as conflicts.
func (r *UserWriteRepository) Create(ctx context.Context, u models.NewUser) (*models.User, error) {
	const query = `
		INSERT INTO users (email, username, password_hash, full_name, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		RETURNING ` + userColumns + `
	`
	email := models.NormalizeLogin(u.Email)
	username := models.NormalizeLogin(u.Username)

	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, email, username, u.PasswordHash, u.FullName)
	// the password hash stays out of the log
	logQuery(query, []any{email, username, "***", u.FullName}, user.ID, err)

	if err != nil {
		return nil, mapUserConflict(err)
	}
	return &user, nil
}

func mapUserConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return apperrors.Wrap(apperrors.Conflict, models.ErrEmailTaken.Message, err)
	default:
		return apperrors.Wrap(apperrors.Conflict, models.ErrUsernameTaken.Message, err)
	}
}
