package repository

import (
	"context"
	"database/sql"
	"errors"

	"todo-service/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (username, password_hash) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user := &entity.User{}
	query := `SELECT id, username, password_hash, telegram_chat_id FROM users WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.TelegramChatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	user := &entity.User{}
	query := `SELECT id, username, password_hash, telegram_chat_id FROM users WHERE username = ?`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.TelegramChatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SetTelegramChatID binds (non-nil) or unbinds (nil) the user's telegram
// chat. A single UPDATE, idempotent: rebinding the same chat or unbinding
// an unbound user is not an error.
func (r *UserRepository) SetTelegramChatID(ctx context.Context, userID int, chatID *int64) error {
	query := `UPDATE users SET telegram_chat_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, chatID, userID)
	return err
}
