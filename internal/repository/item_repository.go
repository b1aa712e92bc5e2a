package repository

import (
	"context"
	"database/sql"

	"todo-service/internal/entity"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db}
}

// ListByUser returns the user's items in insertion order.
func (r *ItemRepository) ListByUser(ctx context.Context, userID int) ([]entity.Item, error) {
	query := `SELECT id, user_id, text FROM items WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var item entity.Item
		if err := rows.Scan(&item.ID, &item.UserID, &item.Text); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	query := `INSERT INTO items (user_id, text) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, item.UserID, item.Text)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	item.ID = int(id)
	return item, nil
}

// Update rewrites the item text. The ownership filter is part of the
// statement itself, so the check and the mutation are one atomic round
// trip; ErrNotFound covers both a missing item and someone else's item.
// The DSN must set clientFoundRows so MySQL reports matched rows, not
// changed rows (writing identical text is still a successful update).
func (r *ItemRepository) Update(ctx context.Context, userID, itemID int, text string) error {
	query := `UPDATE items SET text = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, text, itemID, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the item, same atomic ownership filter as Update.
func (r *ItemRepository) Delete(ctx context.Context, userID, itemID int) error {
	query := `DELETE FROM items WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
