package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			telegram_chat_id BIGINT NULL
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateItems creates the items table if it does not exist.
func AutoMigrateItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			text VARCHAR(500) NOT NULL,
			INDEX items_user_idx (user_id)
		);
	`
	return execWithRetry(db, query, retries)
}

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	if err != nil {
		// Retry creating the table
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}
