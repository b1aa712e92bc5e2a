package entity

type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
}

/*
Mysql Schema:

CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	telegram_chat_id BIGINT NULL
);

CREATE UNIQUE INDEX username_idx ON users(username);
*/
