package entity

type Item struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Text   string `json:"text"`
}

/*
Mysql Schema:

CREATE TABLE items (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	text VARCHAR(500) NOT NULL
);

CREATE INDEX items_user_idx ON items(user_id);
*/
