package model

import "time"

// Message is a buyer-to-seller note attached to an item.
type Message struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	SenderID  int64     `json:"sender_id"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields (not always populated).
	SenderName string `json:"sender,omitempty"`
}

// Favorite bookmarks an item for a user. At most one exists per
// (user, item) pair.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields (not always populated).
	Item *Item `json:"item,omitempty"`
}
