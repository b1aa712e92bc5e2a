package entity

import "time"

// Session maps an opaque bearer token to a user. Tokens live in the
// session store (redis or memory), not in MySQL.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
