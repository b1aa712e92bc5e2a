package entity

// TodoEvent is published to the todo-events topic after each item mutation.
type TodoEvent struct {
	UserID int    `json:"user_id"`
	ItemID int    `json:"item_id"`
	Action string `json:"action"` // "created", "updated", "deleted"
	Text   string `json:"text,omitempty"`
}
