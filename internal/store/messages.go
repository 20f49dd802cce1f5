package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/patchmarket/patch/internal/model"
)

// CreateMessage records a message from sender to an item's seller.
// The message starts unread. Returns ErrNotFound if the item no longer
// exists.
func CreateMessage(ctx context.Context, db *sql.DB, itemID, senderID int64, content string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.FieldErrors{"content": "message content must not be empty"}
	}

	item, err := GetItem(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO messages (item_id, sender_id, content) VALUES (?, ?, ?)`,
		itemID, senderID, content,
	)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting message id: %w", err)
	}

	m := &model.Message{}
	err = db.QueryRowContext(ctx,
		`SELECT m.id, m.item_id, m.sender_id, m.content, m.is_read, m.created_at, u.username
		 FROM messages m JOIN users u ON u.id = m.sender_id WHERE m.id = ?`, id,
	).Scan(&m.ID, &m.ItemID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt, &m.SenderName)
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return m, nil
}

// ListItemMessages returns an item's message thread oldest first, with
// sender usernames resolved.
func ListItemMessages(ctx context.Context, db *sql.DB, itemID int64) ([]model.Message, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.item_id, m.sender_id, m.content, m.is_read, m.created_at, u.username
		 FROM messages m JOIN users u ON u.id = m.sender_id
		 WHERE m.item_id = ? ORDER BY m.created_at, m.id`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ItemID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt, &m.SenderName); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkMessagesRead marks messages on an item's thread as read, except
// those the reader sent. Called when the seller opens the thread.
func MarkMessagesRead(ctx context.Context, db *sql.DB, itemID, readerID int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE messages SET is_read = 1 WHERE item_id = ? AND sender_id != ? AND is_read = 0`,
		itemID, readerID,
	)
	if err != nil {
		return fmt.Errorf("marking messages read: %w", err)
	}
	return nil
}
